// Package version отдает сведения о сборке gridsim.
//
// Источники по убыванию приоритета:
//  1. -ldflags "-X .../version.Date=2026-03-01 -X .../version.Commit=abc123"
//  2. VCS-метки, которые go build вшивает сам (vcs.revision, vcs.time, vcs.modified)
//  3. ничего: сборка "dev"
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Заполняются через -ldflags -X
var (
	Date   string // YYYY-MM-DD (UTC)
	Commit string
)

// Источник сведений о сборке
const (
	SourceLdflags = "ldflags"
	SourceVCS     = "vcs"
	SourceNone    = "none"
)

// Номер сборки - дни от этой даты
var epoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

// Подменяется в тестах
var readBuildInfo = debug.ReadBuildInfo

// Build - сведения о сборке для /version и CLI
type Build struct {
	Number    int    `json:"build"`
	Date      string `json:"date,omitempty"`
	Commit    string `json:"commit,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
	Module    string `json:"module,omitempty"`
	GoVersion string `json:"goVersion,omitempty"`
	Source    string `json:"source"`
	Error     string `json:"error,omitempty"`
}

// BuildNumber переводит дату сборки в номер: дни от эпохи
func BuildNumber(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("build date is empty")
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", date, err)
	}
	if t.Before(epoch) {
		return 0, fmt.Errorf("build date %s is before %s", date, epoch.Format("2006-01-02"))
	}
	return int(t.Sub(epoch).Hours() / 24), nil
}

// Info собирает сведения о текущем бинарнике
func Info() Build {
	b := Build{Date: Date, Commit: Commit, Source: SourceNone}
	if Date != "" || Commit != "" {
		b.Source = SourceLdflags
	}

	if bi, ok := readBuildInfo(); ok {
		b.GoVersion = bi.GoVersion
		b.Module = bi.Main.Version
		applyVCS(&b, bi.Settings)
	}

	if b.Date == "" {
		return b
	}
	n, err := BuildNumber(b.Date)
	if err != nil {
		b.Error = err.Error()
		return b
	}
	b.Number = n
	return b
}

// applyVCS дополняет пустые поля VCS-метками go build
func applyVCS(b *Build, settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = s.Value
				b.Source = SourceVCS
			}
		case "vcs.time":
			if b.Date != "" {
				continue
			}
			// RFC3339, берем только день
			if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
				b.Date = t.UTC().Format("2006-01-02")
				b.Source = SourceVCS
			}
		case "vcs.modified":
			b.Dirty = s.Value == "true"
		}
	}
}

// String - строка для --version
func String() string {
	b := Info()
	if b.Date == "" {
		return "gridsim dev"
	}
	if b.Error != "" {
		return fmt.Sprintf("gridsim build unknown (%s)", b.Error)
	}

	commit := b.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if commit == "" {
		commit = "unknown"
	}
	if b.Dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("gridsim build %d (%s) commit %s", b.Number, b.Date, commit)
}
