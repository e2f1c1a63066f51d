package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/rileyhilliard/hostdash/internal/errors"
)

// maxSuggestDistance bounds how different a name can be and still be offered
// as a "did you mean" suggestion.
const maxSuggestDistance = 3

// Inventory lists the resources a config may reference.
// metrics.Provider satisfies it.
type Inventory interface {
	Interfaces(ctx context.Context) ([]string, error)
	Volumes(ctx context.Context) ([]string, error)
}

// Validate checks the config for errors that don't depend on the host.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but hostdash only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade hostdash or lower the version in your config")
	}

	if cfg.Network.Interface == "" {
		return errors.New(errors.ErrConfig,
			"No network interface configured",
			"Run 'hostdash init' or set network.interface in .hostdash.yaml")
	}

	if strings.ContainsAny(cfg.Network.Interface, " \t\n") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Network interface '%s' contains whitespace", cfg.Network.Interface),
			"Interface names look like 'eth0', 'en0' or 'wlan0'")
	}

	if cfg.Disk.Volume == "" {
		return errors.New(errors.ErrConfig,
			"No disk volume configured",
			"Set disk.volume in .hostdash.yaml, e.g. '/'")
	}

	return nil
}

// ValidateHost checks that the configured interface and volume exist on
// this host. Inventory failures are returned as-is; a missing resource is
// an ErrConfig error carrying a suggestion.
func ValidateHost(ctx context.Context, cfg *Config, inv Inventory) error {
	ifaces, err := inv.Interfaces(ctx)
	if err != nil {
		return err
	}
	if err := CheckInterface(cfg.Network.Interface, ifaces); err != nil {
		return err
	}

	volumes, err := inv.Volumes(ctx)
	if err != nil {
		return err
	}
	return CheckVolume(cfg.Disk.Volume, volumes)
}

// CheckInterface returns an ErrConfig error if name isn't in available.
func CheckInterface(name string, available []string) error {
	if contains(available, name) {
		return nil
	}
	return errors.New(errors.ErrConfig,
		fmt.Sprintf("Network interface '%s' not found", name),
		suggestion(name, available, "interfaces"))
}

// CheckVolume returns an ErrConfig error if name isn't in available.
func CheckVolume(name string, available []string) error {
	if contains(available, name) {
		return nil
	}
	return errors.New(errors.ErrConfig,
		fmt.Sprintf("Disk volume '%s' not found", name),
		suggestion(name, available, "volumes"))
}

// Closest returns the candidate with the smallest edit distance to name, or
// "" when nothing is within maxSuggestDistance.
func Closest(name string, candidates []string) string {
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(name, c)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func suggestion(name string, available []string, kind string) string {
	if match := Closest(name, available); match != "" {
		return fmt.Sprintf("Did you mean '%s'?", match)
	}
	if len(available) == 0 {
		return fmt.Sprintf("This host reports no %s", kind)
	}
	return fmt.Sprintf("Available %s: %s", kind, strings.Join(available, ", "))
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
