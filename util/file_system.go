package util

import (
	"github.com/spf13/afero"
)

// Fs is the filesystem used for spool files and exports. Tests swap in afero.NewMemMapFs().
var Fs afero.Fs = afero.NewOsFs()
