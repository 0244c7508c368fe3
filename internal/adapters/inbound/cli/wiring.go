package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abdidvp/visualkraft/internal/adapters/outbound/artifacts"
	"github.com/abdidvp/visualkraft/internal/adapters/outbound/browser"
	"github.com/abdidvp/visualkraft/internal/adapters/outbound/config"
	"github.com/abdidvp/visualkraft/internal/application"
	"github.com/abdidvp/visualkraft/internal/domain"
)

func (o *globalOptions) projectDir() (string, error) {
	abs, err := filepath.Abs(o.dir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

// loadConfig reads --config when given, otherwise the project's .visualkraft.yaml.
func (o *globalOptions) loadConfig() (domain.HarnessConfig, error) {
	loader := config.New()
	if o.configPath != "" {
		return loader.LoadFile(o.configPath)
	}
	dir, err := o.projectDir()
	if err != nil {
		return domain.HarnessConfig{}, err
	}
	return loader.Load(dir)
}

// newService wires the rod session and file artifact store around cfg.
// Relative output directories are resolved against the project directory.
func (o *globalOptions) newService(cfg domain.HarnessConfig) (*application.ValidationService, error) {
	dir, err := o.projectDir()
	if err != nil {
		return nil, err
	}
	out := cfg.OutputDir
	if !filepath.IsAbs(out) {
		out = filepath.Join(dir, out)
	}

	session := browser.New(browser.ConfigFrom(cfg), o.logger.Named("browser"))
	store := artifacts.New(out)
	return application.NewValidationService(session, store, cfg, o.logger.Named("validation")), nil
}

// signalContext cancels on SIGINT/SIGTERM so the browser is torn down on interrupt.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
