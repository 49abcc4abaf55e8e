package calc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	appDirName    = "ripen"
	luaInitName   = "init.lua"
	arrayInitName = "init.ua"
)

// DefaultConfigDir returns the per-user configuration directory the
// startup scripts are read from, e.g. ~/.config/ripen on Linux.
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appDirName)
}

// LoadScripts loads the startup scripts from dir: init.lua first, then
// init.ua, so an array binding shadows a Lua operator of the same name.
// Every problem, including a missing file, yields one error in the
// returned slice; operators declared before a failure point stay
// registered and the built-ins are always available.
func (r *Registry) LoadScripts(dir string) []error {
	loaders := []struct {
		name string
		load func(string) error
	}{
		{luaInitName, r.LoadLua},
		{arrayInitName, r.LoadArray},
	}
	var errs []error
	for _, l := range loaders {
		path := filepath.Join(dir, l.name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				errs = append(errs, fmt.Errorf("%s: not found", l.name))
			} else {
				errs = append(errs, fmt.Errorf("%s: %w", l.name, err))
			}
			continue
		}
		if err := l.load(path); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", l.name, err))
		}
	}
	return errs
}
