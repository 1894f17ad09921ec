package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testConfig() Config {
	return Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2.0,
		BreakerEnabled:      false,
	}
}

func TestExecute_SucceedsFirstAttempt(t *testing.T) {
	exec := NewExecutor(testConfig(), zap.NewNop())

	calls := 0
	err := exec.Execute(context.Background(), "embed", func(ctx context.Context) error {
		calls++
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestExecute_RetriesRetryableError(t *testing.T) {
	exec := NewExecutor(testConfig(), zap.NewNop())

	calls := 0
	err := exec.Execute(context.Background(), "embed", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, func(err error) ErrorClassification {
		return ErrorClassification{Retryable: true, RecordFailure: true}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestExecute_StopsOnNonRetryable(t *testing.T) {
	exec := NewExecutor(testConfig(), zap.NewNop())

	wantErr := errors.New("bad request")
	calls := 0
	err := exec.Execute(context.Background(), "embed", func(ctx context.Context) error {
		calls++
		return wantErr
	}, func(err error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: true}
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestExecute_ExhaustsAttempts(t *testing.T) {
	exec := NewExecutor(testConfig(), zap.NewNop())

	wantErr := errors.New("still failing")
	calls := 0
	err := exec.Execute(context.Background(), "embed", func(ctx context.Context) error {
		calls++
		return wantErr
	}, func(err error) ErrorClassification {
		return ErrorClassification{Retryable: true, RecordFailure: true}
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestExecute_RespectsContextCancellation(t *testing.T) {
	exec := NewExecutor(testConfig(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := exec.Execute(ctx, "embed", func(ctx context.Context) error {
		calls++
		return nil
	}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected 0 calls, got %d", calls)
	}
}

func TestExecute_BreakerOpensAfterFailures(t *testing.T) {
	cfg := testConfig()
	cfg.RetryMaxAttempts = 1
	cfg.BreakerEnabled = true
	cfg.BreakerMinRequests = 3
	cfg.BreakerFailureRatio = 0.5
	cfg.BreakerOpenTimeout = time.Minute

	exec := NewExecutor(cfg, zap.NewNop())

	boom := errors.New("provider down")
	classifier := func(err error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: true}
	}

	for i := 0; i < 3; i++ {
		_ = exec.Execute(context.Background(), "embed", func(ctx context.Context) error {
			return boom
		}, classifier)
	}

	err := exec.Execute(context.Background(), "embed", func(ctx context.Context) error {
		return nil
	}, classifier)
	if !IsCircuitOpen(err) {
		t.Fatalf("expected open-circuit error, got %v", err)
	}
}

func TestExecute_BreakerIgnoresNonFailures(t *testing.T) {
	cfg := testConfig()
	cfg.RetryMaxAttempts = 1
	cfg.BreakerEnabled = true
	cfg.BreakerMinRequests = 3
	cfg.BreakerFailureRatio = 0.5
	cfg.BreakerOpenTimeout = time.Minute

	exec := NewExecutor(cfg, zap.NewNop())

	clientErr := errors.New("invalid input")
	classifier := func(err error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: false}
	}

	for i := 0; i < 10; i++ {
		_ = exec.Execute(context.Background(), "embed", func(ctx context.Context) error {
			return clientErr
		}, classifier)
	}

	err := exec.Execute(context.Background(), "embed", func(ctx context.Context) error {
		return nil
	}, classifier)
	if err != nil {
		t.Fatalf("expected breaker to stay closed, got %v", err)
	}
}
