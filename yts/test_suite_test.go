package yts

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.yaml.in/yamlstream"
)

var knownFailingTests = loadKnownFailingTests()

func loadKnownFailingTests() map[string]bool {
	fileContent, err := os.ReadFile("known-failing-tests")
	if err != nil {
		return make(map[string]bool)
	}

	lines := strings.Split(string(fileContent), "\n")
	knownTests := make(map[string]bool)
	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine != "" && !strings.HasPrefix(trimmedLine, "#") {
			knownTests[trimmedLine] = true
		}
	}
	return knownTests
}

func shouldSkipTest(t *testing.T) {
	if os.Getenv("RUNALL") == "1" {
		return
	}
	name := t.Name()
	runFailing := os.Getenv("RUNFAILING") == "1"
	isKnownFailing := knownFailingTests[name]

	switch {
	case runFailing && !isKnownFailing:
		t.Skipf("Skipping non-failing test: %s", name)
	case !runFailing && isKnownFailing:
		t.Skipf("Skipping known failing test: %s", name)
	}
}

func TestYAMLSuite(t *testing.T) {
	testDir := "./testdata/data-2022-01-17"
	if _, err := os.Stat(testDir + "/229Q"); os.IsNotExist(err) {
		t.Skipf(`YTS tests require data files to be present at '%s'.
Clone the data-2022-01-17 tag of https://github.com/yaml/yaml-test-suite there first.`, testDir)
	}
	runTestsInDir(t, testDir)
}

func runTestsInDir(t *testing.T, dirPath string) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		t.Fatalf("Failed to read directory %s: %v", dirPath, err)
	}

	for _, entry := range entries {
		entryPath := filepath.Join(dirPath, entry.Name())
		if entry.IsDir() {
			// Check if it's a test case directory (contains in.yaml)
			if _, err := os.Stat(filepath.Join(entryPath, "in.yaml")); err == nil {
				t.Run(entry.Name(), func(t *testing.T) {
					runTest(t, entryPath)
				})
			} else {
				// Otherwise, recurse into the subdirectory
				runTestsInDir(t, entryPath)
			}
		}
	}
}

func normalizeLineEndings(s string) string {
	return strings.NewReplacer(
		"\r", "",
	).Replace(s)
}

func mustRead(t *testing.T, path, name string) []byte {
	data, err := os.ReadFile(filepath.Join(path, name))
	if err != nil {
		t.Fatalf("Failed to read %s (%s): %v", name, path, err)
	}
	return data
}

func fileExists(path, name string) bool {
	_, err := os.Stat(filepath.Join(path, name))
	return err == nil
}

// emitEventText emits the events of a test.event file.
func emitEventText(text string) ([]byte, error) {
	var buf bytes.Buffer
	e, err := yamlstream.NewEmitter(&buf)
	if err != nil {
		return nil, err
	}
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		event, err := yamlstream.ParseEventLine(line)
		if err != nil {
			return nil, err
		}
		if err := e.Emit(event); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), e.Flush()
}

// stripPresentation drops styles, tags and document markers from event
// text so that emitted output can be compared with the original events.
func stripPresentation(events string) []string {
	var out []string
	for _, line := range strings.Split(events, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "+DOC", "-DOC", "+SEQ", "+MAP":
			out = append(out, fields[0])
			continue
		case "=VAL":
			var keep []string
			rest := line[len("=VAL"):]
			for {
				rest = strings.TrimPrefix(rest, " ")
				if strings.HasPrefix(rest, "<") {
					end := strings.IndexByte(rest, '>')
					rest = rest[end+1:]
					continue
				}
				if strings.HasPrefix(rest, "&") {
					name, tail, _ := strings.Cut(rest, " ")
					keep = append(keep, name)
					rest = tail
					continue
				}
				break
			}
			if rest != "" {
				rest = rest[1:]
			}
			out = append(out, strings.Join(append([]string{"=VAL"}, append(keep, rest)...), " "))
			continue
		}
		out = append(out, line)
	}
	return out
}

func runTest(t *testing.T, testPath string) {
	t.Helper()

	// Read test description
	testDescription := mustRead(t, testPath, "===")

	t.Logf("Running test: %s\nDescription: %s", testPath, testDescription)

	inYAML := mustRead(t, testPath, "in.yaml")
	expectError := fileExists(testPath, "error")
	expectedEvents := normalizeLineEndings(string(mustRead(t, testPath, "test.event")))
	expectedEvents = strings.TrimSuffix(expectedEvents, "\n")

	t.Run("EventComparisonTest", func(t *testing.T) {
		shouldSkipTest(t)
		actualEvents, eventErr := yamlstream.ParserGetEvents(inYAML)

		if expectError {
			if eventErr == nil {
				t.Errorf(
					"Test: %s\nDescription: %s\nError: Expected error on event parsing but got none",
					testPath, testDescription)
			}
			return
		}
		if eventErr != nil {
			t.Errorf("Test: %s\nDescription: %s\nError: Unexpected error on event parsing: %v",
				testPath, testDescription, eventErr)
			return
		}
		actualEventsStr := normalizeLineEndings(actualEvents)
		if actualEventsStr != expectedEvents {
			t.Errorf(
				"Test: %s\nDescription: %s\nError: Event mismatch\nExpected:\n%q\nGot:\n%q",
				testPath, testDescription, expectedEvents, actualEventsStr)
		}
	})

	t.Run("StreamingTest", func(t *testing.T) {
		shouldSkipTest(t)
		if expectError {
			return
		}
		// Reading one byte at a time must give the same events.
		p := yamlstream.NewParser(&oneByteReader{data: inYAML})
		var lines []string
		for {
			event, err := p.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Errorf("Test: %s\nError: Unexpected error on streamed parsing: %v", testPath, err)
				return
			}
			lines = append(lines, yamlstream.FormatEvent(&event))
		}
		if got := normalizeLineEndings(strings.Join(lines, "\n")); got != expectedEvents {
			t.Errorf("Test: %s\nError: Streamed event mismatch\nExpected:\n%q\nGot:\n%q",
				testPath, expectedEvents, got)
		}
	})

	t.Run("EmitTest", func(t *testing.T) {
		shouldSkipTest(t)
		if expectError {
			return
		}
		emitted, err := emitEventText(expectedEvents)
		if err != nil {
			t.Errorf("Test: %s\nDescription: %s\nError: Failed to emit events: %v", testPath, testDescription, err)
			return
		}
		reparsed, err := yamlstream.ParserGetEvents(emitted)
		if err != nil {
			t.Errorf("Test: %s\nDescription: %s\nError: Failed to parse emitted YAML %q: %v",
				testPath, testDescription, emitted, err)
			return
		}
		want := stripPresentation(expectedEvents)
		got := stripPresentation(normalizeLineEndings(reparsed))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Test: %s\nDescription: %s\nError: Emitted YAML %q reads back differently (-want +got):\n%s",
				testPath, testDescription, emitted, diff)
		}
	})
}

type oneByteReader struct {
	data []byte
}

func (r *oneByteReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	p[0] = r.data[0]
	r.data = r.data[1:]
	return 1, nil
}
