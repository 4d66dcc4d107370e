package health

import (
	"context"
	"errors"
	"testing"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestCheckBasic(t *testing.T) {
	ok := NewHealthChecker(pingFunc(func(context.Context) error { return nil }), nil)
	if s := ok.CheckBasic(context.Background()); s.Status != "healthy" || s.Store.Status != "healthy" {
		t.Errorf("expected healthy, got %+v", s)
	}

	down := NewHealthChecker(pingFunc(func(context.Context) error { return errors.New("quota") }), nil)
	s := down.CheckBasic(context.Background())
	if s.Status != "unhealthy" || s.Store.Error != "quota" {
		t.Errorf("expected unhealthy with error, got %+v", s)
	}
}

func TestCheckDetailedRedis(t *testing.T) {
	store := pingFunc(func(context.Context) error { return nil })

	if d := NewHealthChecker(store, nil).CheckDetailed(context.Background()); d.Redis != "disabled" {
		t.Errorf("expected redis disabled, got %q", d.Redis)
	}
	if d := NewHealthChecker(store, func() bool { return false }).CheckDetailed(context.Background()); d.Redis != "unhealthy" {
		t.Errorf("expected redis unhealthy, got %q", d.Redis)
	}
}

func TestConfigErrorChecker(t *testing.T) {
	s := NewConfigErrorChecker(errors.New("no credentials")).CheckBasic(context.Background())
	if s.Status != "unhealthy" || s.Store.Status != "unconfigured" || s.Error != "no credentials" {
		t.Errorf("unexpected status %+v", s)
	}
}
