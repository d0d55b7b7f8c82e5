package llm

import "testing"

func TestParseProviderTypeAliases(t *testing.T) {
	cases := map[string]ProviderType{
		"openrouter": ProviderOpenRouter,
		"google":     ProviderGemini,
		"claude":     ProviderAnthropic,
		"local":      ProviderOllama,
		"COHERE":     ProviderCohere,
	}
	for in, want := range cases {
		got, err := ParseProviderType(in)
		if err != nil {
			t.Fatalf("ParseProviderType(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseProviderType(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseProviderType("bytez"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewDefaultsTemperature(t *testing.T) {
	p, err := New(ProviderOpenRouter, Options{Keys: []string{"k"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	or := p.(*OpenRouterProvider)
	if or.temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7 default", or.temperature)
	}
	if or.model != ProviderOpenRouter.DefaultModel() {
		t.Errorf("model = %q, want default", or.model)
	}
}

func TestNewHonorsZeroTemperature(t *testing.T) {
	zero := float32(0)
	p, err := New(ProviderOpenRouter, Options{Keys: []string{"k"}, Temperature: &zero})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := p.(*OpenRouterProvider).temperature; got != 0 {
		t.Errorf("temperature = %v, want explicit 0", got)
	}
}
