package di

import (
	"testing"

	"github.com/goliatone/go-assetfield/internal/logging/gologger"
	"github.com/goliatone/go-assetfield/internal/runtimeconfig"
)

func TestConfigureLoggerProviderByName(t *testing.T) {
	cases := []struct {
		provider string
		wantGo   bool
	}{
		{provider: "gologger", wantGo: true},
		{provider: "noop"},
	}
	for _, tc := range cases {
		t.Run(tc.provider, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			cfg.Features.Logger = true
			cfg.Logging.Provider = tc.provider
			cfg.Logging.Level = "debug"
			cfg.Logging.Format = "json"

			container, err := NewContainer(cfg)
			if err != nil {
				t.Fatalf("NewContainer returned error: %v", err)
			}
			t.Cleanup(func() { container.Close() })

			_, isGo := container.loggerProvider.(*gologger.Provider)
			if isGo != tc.wantGo {
				t.Fatalf("unexpected provider %T", container.loggerProvider)
			}
			if container.logger == nil {
				t.Fatalf("expected a module logger")
			}
			container.logger.Debug("di.test")
		})
	}
}
