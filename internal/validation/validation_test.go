package validation

import "testing"

func TestValidateYAML_ValidRepoConfig(t *testing.T) {
	validYAML := `
include_tests: false
large_repo_threshold: 150
clone_depth: 1
output_file: "result.json"
pretty: true
log_level: "debug"
log_format: "json"
`

	if err := ValidateYAML("dsm-repo-config.json", []byte(validYAML)); err != nil {
		t.Fatalf("expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidateYAML_InvalidRepoConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "negative threshold",
			yaml: `large_repo_threshold: -1`,
		},
		{
			name: "unknown log level",
			yaml: `log_level: "verbose"`,
		},
		{
			name: "unknown field",
			yaml: `not_a_real_field: true`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateYAML("dsm-repo-config.json", []byte(tt.yaml)); err == nil {
				t.Fatalf("expected invalid config %q to fail validation", tt.yaml)
			}
		})
	}
}

func TestListAvailableSchemas(t *testing.T) {
	schemas, err := ListAvailableSchemas()
	if err != nil {
		t.Fatalf("ListAvailableSchemas failed: %v", err)
	}
	found := false
	for _, s := range schemas {
		if s == "dsm-repo-config.json" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected dsm-repo-config.json in schema list, got %v", schemas)
	}
}
