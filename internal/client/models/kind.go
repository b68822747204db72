package models

import (
	"path/filepath"
	"strings"
)

// Kind is the display category of a file, derived from its extension.
type Kind string

const (
	KindDocument    Kind = "document"
	KindImage       Kind = "image"
	KindArchive     Kind = "archive"
	KindSpreadsheet Kind = "spreadsheet"
	KindData        Kind = "data"
	KindOther       Kind = "other"
)

var kindByExt = map[string]Kind{
	".pdf":  KindDocument,
	".docx": KindDocument,
	".txt":  KindDocument,
	".png":  KindImage,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".gif":  KindImage,
	".zip":  KindArchive,
	".rar":  KindArchive,
	".7z":   KindArchive,
	".csv":  KindSpreadsheet,
	".xls":  KindSpreadsheet,
	".xlsx": KindSpreadsheet,
	".json": KindData,
	".xml":  KindData,
	".yaml": KindData,
}

// KindOf classifies filename by its last extension, case-insensitively.
func KindOf(filename string) Kind {
	if k, ok := kindByExt[strings.ToLower(filepath.Ext(filename))]; ok {
		return k
	}
	return KindOther
}
