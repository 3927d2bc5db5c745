package app

import (
	"os"
	"time"

	devicons "github.com/epilande/go-devicons"
)

type iconFileInfo struct {
	name  string
	isDir bool
}

func (i iconFileInfo) Name() string { return i.name }

func (i iconFileInfo) Size() int64 { return 0 }

func (i iconFileInfo) Mode() os.FileMode {
	if i.isDir {
		return os.ModeDir | 0o755
	}
	return 0
}

func (i iconFileInfo) ModTime() time.Time { return time.Time{} }

func (i iconFileInfo) IsDir() bool { return i.isDir }

func (i iconFileInfo) Sys() any { return nil }

// Action row icons.
const (
	iconRename   = "󰑕"
	iconMove     = "󰪹"
	iconCopy     = ""
	iconDownload = "󰇚"
	iconCompress = ""
	iconDelete   = ""
)

func deviconForName(name string, isDir bool) string {
	if name == "" {
		return ""
	}
	style := devicons.IconForInfo(iconFileInfo{name: name, isDir: isDir})
	return style.Icon
}
