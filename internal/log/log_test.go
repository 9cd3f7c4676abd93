package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestPrintf(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, false)
	l.Printf("hello %s %d", "world", 42)
	if got := buf.String(); got != "hello world 42" {
		t.Errorf("Printf output = %q, want %q", got, "hello world 42")
	}
}

func TestChannels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		write func(l *Logger)
		want  []string
	}{
		{"log", func(l *Logger) { l.Logf("Checking %q", "App") }, []string{`Checking "App"`}},
		{"success", func(l *Logger) { l.Successf("linked") }, []string{"✔", "linked"}},
		{"warning", func(l *Logger) { l.Warnf("careful") }, []string{"careful"}},
		{"stale", func(l *Logger) { l.Stalef("Directory %q already exists!", "App") }, []string{"🟡", `Directory "App" already exists!`}},
		{"hint", func(l *Logger) { l.Hintf("use lib") }, []string{"ℹ Hint:", "use lib"}},
		{"error", func(l *Logger) { l.Errorf("broken") }, []string{"broken"}},
		{"system error", func(l *Logger) { l.SystemErrorf("disk gone") }, []string{"⚠", "Execution error: disk gone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.write(New(&buf, false))
			got := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("output = %q, want to contain %q", got, want)
				}
			}
			if !strings.HasSuffix(got, "\n") {
				t.Errorf("output = %q, want trailing newline", got)
			}
		})
	}
}

func TestMultilineNotPadded(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, false)
	l.Logf("a\nlonger line")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if strings.Contains(lines[0], "a ") {
		t.Errorf("first line was padded: %q", lines[0])
	}
}

func TestSeparator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		left  int
		right int
	}{
		{"plain", "", 38, 37},
		{"even infill", "ab", 33, 32},
		{"odd infill", "abc", 32, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Separator(tt.text)
			infill := ""
			if tt.text != "" {
				infill = "    " + tt.text + "    "
			}
			want := strings.Repeat("=", tt.left) + infill + strings.Repeat("=", tt.right)
			if got != want {
				t.Errorf("Separator(%q) = %q, want %q", tt.text, got, want)
			}
		})
	}
}

func TestSeparator_LongTitle(t *testing.T) {
	t.Parallel()

	title := strings.Repeat("x", 80)
	if got := Separator(title); got != "    "+title+"    " {
		t.Errorf("Separator(long) = %q, want infill only", got)
	}
}

func TestDebug(t *testing.T) {
	t.Parallel()

	t.Run("verbose key-val format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, true)
		l.Debug("resolving plugin id", "plugin", "Template", "host", "localhost")
		got := buf.String()
		if !strings.Contains(got, "plugin=Template") {
			t.Errorf("Debug output = %q, want to contain plugin=Template", got)
		}
		if !strings.Contains(got, "host=localhost") {
			t.Errorf("Debug output = %q, want to contain host=localhost", got)
		}
	})

	t.Run("odd keyvals drops last", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, true)
		l.Debug("msg", "key1", "val1", "orphan")
		got := buf.String()
		if !strings.Contains(got, "key1=val1") {
			t.Errorf("Debug output = %q, want to contain key1=val1", got)
		}
		if strings.Contains(got, "orphan") {
			t.Errorf("Debug output = %q, should not contain orphan key", got)
		}
	})

	t.Run("not verbose is silent", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, false)
		l.Debug("should not appear", "key", "val")
		if buf.Len() != 0 {
			t.Errorf("Debug wrote %q when not verbose", buf.String())
		}
	})
}

func TestWithLogger_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, true)
		ctx := WithLogger(context.Background(), l)
		if got := FromContext(ctx); got != l {
			t.Error("FromContext did not return the stored logger")
		}
	})

	t.Run("fallback discard logger", func(t *testing.T) {
		t.Parallel()
		l := FromContext(context.Background())
		if l == nil {
			t.Fatal("FromContext returned nil for empty context")
		}
		l.Errorf("should not appear anywhere")
		if l.Writer() != io.Discard {
			t.Error("fallback logger should write to io.Discard")
		}
	})
}
