package resources

import (
	"os"
	"path/filepath"

	"github.com/npillmayer/fontsweep/core"
	"github.com/npillmayer/schuko"
)

// ConfigDirPath checks and possibly creates a folder in the user's config
// directory. The base directory is taken from `os.UserConfigDir()`, plus
// an application specific key, taken as `app-key` from the configuration.
// Clients may specify a sequence of folder names, which will be appended to
// the base path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func ConfigDirPath(conf schuko.Configuration, subfolders ...string) (string, error) {
	appkey := conf.GetString("app-key")
	tracer().Debugf("config[app-key] = %s", appkey)
	if appkey == "" {
		return "", core.Error(core.EINVALID, "application key is not set")
	}
	confdir, err := os.UserConfigDir()
	if err != nil {
		return "", core.WrapError(err, core.EMISSING, "user config directory not set")
	}
	dir := filepath.Join(append([]string{confdir, appkey}, subfolders...)...)
	if _, err = os.Stat(dir); os.IsNotExist(err) {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return "", core.WrapError(err, core.EIO,
				"user configuration path cannot be created: %s", dir)
		}
	}
	return dir, nil
}
