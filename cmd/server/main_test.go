package main

import (
	"testing"

	"github.com/iho/lendpool/internal/infrastructure/config"
)

func TestBuildRateModel(t *testing.T) {
	cfg := &config.Config{
		RateBaseAPR: "0.02",
		RateSlope1:  "0.15",
		RateSlope2:  "0.60",
		RateKink:    "0.80",
	}

	model, err := buildRateModel(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model == nil {
		t.Fatal("expected rate model")
	}
}

func TestBuildRateModelInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"bad base", config.Config{RateBaseAPR: "x", RateSlope1: "0.15", RateSlope2: "0.60", RateKink: "0.80"}},
		{"bad kink", config.Config{RateBaseAPR: "0.02", RateSlope1: "0.15", RateSlope2: "0.60", RateKink: "1.5"}},
		{"negative slope", config.Config{RateBaseAPR: "0.02", RateSlope1: "-0.15", RateSlope2: "0.60", RateKink: "0.80"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buildRateModel(&tt.cfg); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
