// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

/*
Package notify hands password-reset notifications to a delivery channel.

Delivery itself (SMTP, SMS) is outside this service. A [Sender] either logs the
reset link for local development ([LogSender]) or enqueues a job on a Redis
list drained by a mail worker ([RedisSender]).
*/
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/htilssu/demarthology-api/internal/platform/ctxutil"
)

// Extra keys understood by the senders.
const (
	ExtraSubject = "subject"
	ExtraChannel = "channel"
)

// Sender delivers a password reset token to the owner of email.
// It reports false when the notification was not accepted.
type Sender interface {
	Send(ctx context.Context, email, resetToken string, extra map[string]string) (bool, error)
}

// Job is the JSON payload enqueued for the mail worker.
type Job struct {
	Kind      string            `json:"kind"`
	Email     string            `json:"email"`
	ResetLink string            `json:"reset_link"`
	Extra     map[string]string `json:"extra,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// JobKindPasswordReset identifies reset notifications on the queue.
const JobKindPasswordReset = "password_reset"

// ResetLink appends the token as a query parameter to base.
func ResetLink(base, resetToken string) (string, error) {
	link, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("notify: invalid reset link base: %w", err)
	}

	query := link.Query()
	query.Set("token", resetToken)
	link.RawQuery = query.Encode()

	return link.String(), nil
}

// # Log Sender

// LogSender writes the reset link to the request logger. Development only.
type LogSender struct {
	linkBase string
}

// NewLogSender creates a [LogSender] building links from linkBase.
func NewLogSender(linkBase string) *LogSender {
	return &LogSender{linkBase: linkBase}
}

func (s *LogSender) Send(ctx context.Context, email, resetToken string, extra map[string]string) (bool, error) {
	link, err := ResetLink(s.linkBase, resetToken)
	if err != nil {
		return false, err
	}

	subject := extra[ExtraSubject]
	if subject == "" {
		subject = "Password Reset Request"
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "password_reset_notification",
		slog.String("email", email),
		slog.String("subject", subject),
		slog.String("reset_link", link),
	)
	return true, nil
}

// # Redis Sender

// ListPusher is the subset of the go-redis client used by [RedisSender].
type ListPusher interface {
	RPush(ctx context.Context, key string, values ...any) *redis.IntCmd
}

// RedisSender enqueues reset jobs on a Redis list.
type RedisSender struct {
	client   ListPusher
	queue    string
	linkBase string
	now      func() time.Time
}

// NewRedisSender creates a [RedisSender] pushing onto queue.
func NewRedisSender(client ListPusher, queue, linkBase string) *RedisSender {
	return &RedisSender{
		client:   client,
		queue:    queue,
		linkBase: linkBase,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *RedisSender) Send(ctx context.Context, email, resetToken string, extra map[string]string) (bool, error) {
	link, err := ResetLink(s.linkBase, resetToken)
	if err != nil {
		return false, err
	}

	payload, err := json.Marshal(Job{
		Kind:      JobKindPasswordReset,
		Email:     email,
		ResetLink: link,
		Extra:     extra,
		CreatedAt: s.now(),
	})
	if err != nil {
		return false, fmt.Errorf("notify: failed to encode job: %w", err)
	}

	if err := s.client.RPush(ctx, s.queue, payload).Err(); err != nil {
		return false, fmt.Errorf("notify: failed to enqueue job: %w", err)
	}
	return true, nil
}
