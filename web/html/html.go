package html

import (
	"embed"
)

//go:embed index.html css js
var HTML embed.FS
