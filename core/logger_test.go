package core

import (
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		mode      string
		wantDebug bool
	}{
		{mode: "development", wantDebug: true},
		{mode: "", wantDebug: true},
		{mode: "prod", wantDebug: false},
		{mode: " Production ", wantDebug: false},
	}

	for _, tt := range tests {
		t.Run("should build a logger for mode "+tt.mode, func(t *testing.T) {
			logger, err := NewLogger(tt.mode)
			if err != nil {
				t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
			}

			got := logger.Core().Enabled(zapcore.DebugLevel)
			if got != tt.wantDebug {
				t.Fatalf("\nwanted:\n%v\ngot:\n%v", tt.wantDebug, got)
			}
		})
	}
}

func TestCommandFields(t *testing.T) {
	t.Run("should carry the command and a v7 id", func(t *testing.T) {
		fields := CommandFields("register_tenant")
		if len(fields) != 2 {
			t.Fatalf("\nwanted:\n2\ngot:\n%d", len(fields))
		}

		if fields[0].Key != "command" || fields[0].String != "register_tenant" {
			t.Fatalf("\nwanted:\ncommand=register_tenant\ngot:\n%s=%s", fields[0].Key, fields[0].String)
		}

		if fields[1].Key != "command_id" {
			t.Fatalf("\nwanted:\ncommand_id\ngot:\n%s", fields[1].Key)
		}

		id, err := uuid.Parse(fields[1].String)
		if err != nil {
			t.Fatalf("parsing command id: %v", err)
		}
		if id.Version() != 7 {
			t.Fatalf("\nwanted:\n7\ngot:\n%d", id.Version())
		}
	})

	t.Run("should give each command its own id", func(t *testing.T) {
		a := CommandFields("reset")[1].String
		b := CommandFields("reset")[1].String
		if a == b {
			t.Fatalf("\nwanted:\ndistinct ids\ngot:\n%s twice", a)
		}
	})
}
