package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"loud":  zapcore.InfoLevel,
		"":      zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Fatalf("toZapLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidLevel(t *testing.T) {
	for _, s := range []string{"debug", "INFO", " warn ", "error"} {
		if !ValidLevel(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if ValidLevel("trace") {
		t.Fatalf("trace must not be valid")
	}
}

func TestNopAndNamed(t *testing.T) {
	l := Nop().Named("reconciler")
	l.Infow("ignored", "k", "v")
}
