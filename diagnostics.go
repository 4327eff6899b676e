// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package dumbo

import (
	"context"
	"log/slog"
	"strings"

	"github.com/z5labs/dumbo/internal/slogfield"
	"github.com/z5labs/dumbo/pkg/config"
	"github.com/z5labs/dumbo/pkg/config/key"
	"github.com/z5labs/dumbo/pkg/maskslog"
)

func logSources(ctx context.Context, log *slog.Logger, p LoadingParam) {
	var attrs []any
	if p.File != "" {
		attrs = append(attrs, slogfield.File(p.File))
	}
	if p.Env != nil {
		attrs = append(
			attrs,
			slogfield.EnvPrefix(p.Env.Name),
			slogfield.Separator(p.Env.Sep()),
		)
	}
	log.InfoContext(ctx, "resolving configuration", attrs...)
}

func logMapping(ctx context.Context, log *slog.Logger, cfg config.EnvConfig, m config.EnvMapping) {
	for _, name := range m.Rejected {
		log.WarnContext(
			ctx,
			"ignoring environment variable with an empty key segment",
			slogfield.EnvVar(name),
		)
	}
	if len(m.Vars) == 0 {
		log.WarnContext(
			ctx,
			"no environment variables matched prefix",
			slogfield.EnvPrefix(cfg.Name),
			slogfield.Separator(cfg.Sep()),
		)
		return
	}
	log.DebugContext(
		ctx,
		"mapped environment variables",
		slogfield.EnvPrefix(cfg.Name),
		slogfield.Int("count", len(m.Vars)),
	)
}

// showSettings parses the show settings flag scoped to cfg.
func showSettings(environ []string, cfg config.EnvConfig) (bool, error) {
	name := cfg.ShowSettingsVar()
	value, _ := config.LookupEnv(environ, name)
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true, nil
	case "", "false", "0", "no", "off":
		return false, nil
	default:
		return false, ShowSettingsParseError{Name: name, Value: value}
	}
}

func logSettings(ctx context.Context, log *slog.Logger, tree config.Map) {
	var settings []any
	tree.Walk(func(chain key.Chain, v any) bool {
		settings = append(settings, slogfield.Setting(chain, v))
		return true
	})

	masked := slog.New(maskslog.NewHandler(log.Handler(), maskslog.Sensitive()))
	masked.InfoContext(ctx, "configuration loaded", slog.Group("settings", settings...))
}
