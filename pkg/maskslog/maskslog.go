// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package maskslog provides a slog.Handler which masks log messages and
// attribute values before they reach the wrapped handler. Attributes nested
// in groups are masked as well, which is how resolved settings are echoed.
package maskslog

import (
	"context"
	"log/slog"
	"strings"
)

type rule struct {
	match func(string) bool
	mask  func(slog.Attr) slog.Attr
}

type options struct {
	rules   []rule
	message []func(string) string
}

// Option helps configure the Handler.
type Option interface {
	applyOption(*options)
}

type optionFunc func(*options)

func (f optionFunc) applyOption(opts *options) {
	f(opts)
}

// Message registers a function for masking slog.Record messages.
func Message(f func(string) string) Option {
	return optionFunc(func(o *options) {
		o.message = append(o.message, f)
	})
}

// Attr registers a function for masking a slog.Attr given its exact key.
func Attr(key string, f func(slog.Attr) slog.Attr) Option {
	return Match(func(k string) bool { return k == key }, f)
}

// Match registers a function for masking every slog.Attr whose key
// satisfies match.
func Match(match func(string) bool, f func(slog.Attr) slog.Attr) Option {
	return optionFunc(func(o *options) {
		o.rules = append(o.rules, rule{match: match, mask: f})
	})
}

// Sensitive masks every attribute whose key looks like it holds a secret.
func Sensitive() Option {
	return Match(SensitiveKey, AnonymousStringAttr)
}

var sensitiveWords = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"credential",
	"private_key",
	"privatekey",
	"api_key",
	"apikey",
}

// SensitiveKey reports whether key, compared case insensitively,
// contains a word commonly used for secrets.
func SensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, w := range sensitiveWords {
		if strings.Contains(k, w) {
			return true
		}
	}
	return false
}

// AnonymousStringAttr is a helper function for converting any slog.Attr
// into the anonymized string, "****". It completely ignores the given
// slog.Attr value type and always return a string value.
func AnonymousStringAttr(a slog.Attr) slog.Attr {
	return slog.String(a.Key, "****")
}

// Handler is an slog.Handler.
type Handler struct {
	slog slog.Handler

	rules   []rule
	message []func(string) string
}

// NewHandler returns a new Handler.
func NewHandler(h slog.Handler, opts ...Option) *Handler {
	o := &options{}
	for _, opt := range opts {
		opt.applyOption(o)
	}
	return &Handler{
		slog:    h,
		rules:   o.rules,
		message: o.message,
	}
}

// Enabled implements the slog.Handler interface.
func (h *Handler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.slog.Enabled(ctx, lvl)
}

// Handle implements the slog.Handler interface.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	msg := record.Message
	for _, f := range h.message {
		msg = f(msg)
	}
	if len(h.rules) == 0 {
		record.Message = msg
		return h.slog.Handle(ctx, record)
	}

	nr := slog.NewRecord(record.Time, record.Level, msg, record.PC)
	record.Attrs(func(a slog.Attr) bool {
		nr.AddAttrs(h.mask(a))
		return true
	})
	return h.slog.Handle(ctx, nr)
}

func (h *Handler) mask(a slog.Attr) slog.Attr {
	for _, r := range h.rules {
		if r.match(a.Key) {
			return r.mask(a)
		}
	}

	v := a.Value.Resolve()
	if v.Kind() != slog.KindGroup {
		return a
	}
	group := v.Group()
	attrs := make([]any, len(group))
	for i, ga := range group {
		attrs[i] = h.mask(ga)
	}
	return slog.Group(a.Key, attrs...)
}

// WithAttrs implements the slog.Handler interface.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nr := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		nr[i] = h.mask(a)
	}
	return &Handler{
		slog:    h.slog.WithAttrs(nr),
		rules:   h.rules,
		message: h.message,
	}
}

// WithGroup implements the slog.Handler interface.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		slog:    h.slog.WithGroup(name),
		rules:   h.rules,
		message: h.message,
	}
}
