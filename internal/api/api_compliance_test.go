package api_test

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestAPICompliance keeps network access behind the api package. Endpoint
// paths may only be built in client.go, and the only absolute URLs allowed
// in non-test code are the project page and the config placeholder.
func TestAPICompliance(t *testing.T) {
	allowedURLs := []string{
		"https://github.com/hy4ri/taskdex",
		"https://YOUR-PROJECT.supabase.co",
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current working directory: %v", err)
	}

	internalDir := filepath.Join(cwd, "..")
	if stat, err := os.Stat(internalDir); err != nil || !stat.IsDir() {
		t.Logf("Could not locate internal directory from %s, skipping scan", cwd)
		return
	}

	err = filepath.Walk(internalDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".go") || strings.HasSuffix(info.Name(), "_test.go") {
			return nil
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		isClient := filepath.Base(filepath.Dir(path)) == "api" && info.Name() == "client.go"

		lineNumber := 0
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			lineNumber++
			line := scanner.Text()

			if !isClient && strings.Contains(line, "/rest/v1") {
				t.Errorf("REST path built outside the api client in %s:%d", path, lineNumber)
			}

			if idx := strings.Index(line, "https://"); idx != -1 {
				rest := line[idx:]

				allowed := false
				for _, p := range allowedURLs {
					if strings.HasPrefix(rest, p) {
						allowed = true
						break
					}
				}

				if !allowed {
					splits := strings.FieldsFunc(rest, func(r rune) bool {
						return r == '"' || r == '`' || r == ' ' || r == '>' || r == ')'
					})
					url := rest
					if len(splits) > 0 {
						url = splits[0]
					}
					t.Errorf("Unauthorized URL found in %s:%d: %s", path, lineNumber, url)
				}
			}
		}

		return scanner.Err()
	})

	if err != nil {
		t.Fatalf("Failed to walk directories: %v", err)
	}
}
