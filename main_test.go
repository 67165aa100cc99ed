package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pixelseal/pixelseal/stego/imaging"
)

func TestDefaultOutputPath(t *testing.T) {
	testCases := []struct {
		testCase string
		input    string
		format   imaging.Format
		want     string
	}{
		{
			"PNG carrier, PNG output",
			"photo.png",
			imaging.PNG,
			"photo.sealed.png",
		},
		{
			"JPEG carrier, PNG output",
			"holiday.jpg",
			imaging.PNG,
			"holiday.sealed.png",
		},
		{
			"PNG carrier, BMP output",
			"photo.png",
			imaging.BMP,
			"photo.sealed.bmp",
		},
		{
			"No extension",
			"carrier",
			imaging.PNG,
			"carrier.sealed.png",
		},
		{
			"Nested path with dots in directory",
			"some.dir/photo.png",
			imaging.PNG,
			"some.dir/photo.sealed.png",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.testCase, func(t *testing.T) {
			got := defaultOutputPath(tc.input, tc.format)
			if got != tc.want {
				t.Fatalf("\n  wanted: %#v\n     got: %#v", tc.want, got)
			}
		})
	}
}

func TestResolveMessage(t *testing.T) {
	t.Run("Message flag wins", func(t *testing.T) {
		got, err := resolveMessage("from flag", "ignored.txt", strings.NewReader("ignored"))
		if err != nil {
			t.Fatalf("returned error: %v", err)
		}
		if got != "from flag" {
			t.Fatalf("\n  wanted: %#v\n     got: %#v", "from flag", got)
		}
	})

	t.Run("Message file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "message.txt")
		if err := os.WriteFile(file, []byte("from file"), 0666); err != nil {
			t.Fatalf("failed to write message file: %v", err)
		}
		got, err := resolveMessage("", file, strings.NewReader("ignored"))
		if err != nil {
			t.Fatalf("returned error: %v", err)
		}
		if got != "from file" {
			t.Fatalf("\n  wanted: %#v\n     got: %#v", "from file", got)
		}
	})

	t.Run("Missing message file", func(t *testing.T) {
		_, err := resolveMessage("", filepath.Join(t.TempDir(), "missing.txt"), strings.NewReader(""))
		if err == nil {
			t.Fatal("expected error for missing message file")
		}
	})

	t.Run("Stdin fallback", func(t *testing.T) {
		got, err := resolveMessage("", "", strings.NewReader("from stdin\n"))
		if err != nil {
			t.Fatalf("returned error: %v", err)
		}
		if got != "from stdin\n" {
			t.Fatalf("\n  wanted: %#v\n     got: %#v", "from stdin\n", got)
		}
	})
}
