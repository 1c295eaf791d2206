package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecomart-chatbot/pkg/log"
)

const logPrefixManager = "llmprovider.Manager"

// Config tunes a Manager. The zero value is one provider, one attempt and no overall deadline.
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration // multiplied by the attempt number
	MaxTotalTimeout time.Duration // bounds the whole chain, retries included
}

// Manager is a Provider backed by an ordered chain of providers.
type Manager struct {
	chain []Provider
	cfg   Config
	l     log.Logger
}

var _ Provider = (*Manager)(nil)

// NewManager creates a Manager. providers must already be sorted by priority.
func NewManager(providers []Provider, cfg *Config, l log.Logger) *Manager {
	m := &Manager{chain: providers, l: l}
	if cfg != nil {
		m.cfg = *cfg
	}
	if m.cfg.RetryAttempts < 1 {
		m.cfg.RetryAttempts = 1
	}
	return m
}

// GenerateContent sends req to the primary provider and, with fallback enabled, down the chain
// until one succeeds. A single failing provider returns its own error unchanged.
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	candidates := m.candidates()
	if len(candidates) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	if m.cfg.MaxTotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.MaxTotalTimeout)
		defer cancel()
	}

	var errs []error
	for _, p := range candidates {
		if ctx.Err() != nil {
			errs = append(errs, timeoutError(p, ctx.Err()))
			break
		}

		resp, err := m.attempt(ctx, p, req)
		if err == nil {
			m.logUsage(ctx, p, resp)
			return resp, nil
		}
		m.l.Warnf(ctx, "%s: provider=%s model=%s: %v", logPrefixManager, p.Name(), p.Model(), err)
		errs = append(errs, err)
	}

	if len(errs) == 1 {
		return nil, errs[0]
	}
	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, errors.Join(errs...))
}

// Name returns the primary provider's name.
func (m *Manager) Name() string {
	if len(m.chain) == 0 {
		return ""
	}
	return m.chain[0].Name()
}

// Model returns the primary provider's default model.
func (m *Manager) Model() string {
	if len(m.chain) == 0 {
		return ""
	}
	return m.chain[0].Model()
}

func (m *Manager) candidates() []Provider {
	if !m.cfg.FallbackEnabled && len(m.chain) > 1 {
		return m.chain[:1]
	}
	return m.chain
}

// attempt calls p up to RetryAttempts times with a linearly growing pause.
// Rejected credentials are not retried.
func (m *Manager) attempt(ctx context.Context, p Provider, req *Request) (*Response, error) {
	var err error
	for n := 0; n < m.cfg.RetryAttempts; n++ {
		if n > 0 {
			select {
			case <-time.After(time.Duration(n) * m.cfg.RetryDelay):
			case <-ctx.Done():
				return nil, timeoutError(p, ctx.Err())
			}
		}

		var resp *Response
		if resp, err = p.GenerateContent(ctx, req); err == nil {
			return resp, nil
		}
		if !retryable(err) {
			break
		}
	}
	return nil, err
}

func (m *Manager) logUsage(ctx context.Context, p Provider, resp *Response) {
	var u Usage
	if resp.Usage != nil {
		u = *resp.Usage
	}
	m.l.Infof(ctx, "%s: provider=%s model=%s tokens in=%d out=%d total=%d",
		logPrefixManager, p.Name(), resp.ModelName, u.InputTokens, u.OutputTokens, u.TotalTokens)
}

func timeoutError(p Provider, cause error) error {
	return &ProviderError{Provider: p.Name(), Err: fmt.Errorf("%w: %w", ErrProviderTimeout, cause)}
}
