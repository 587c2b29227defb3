package bootstrap

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// LoadPlan reads a YAML plan file, filling any omitted fields from the default plan.
// Plan files never carry passwords.
func LoadPlan(fs afero.Fs, path string) (Plan, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to read plan file: %w", err)
	}

	plan := DefaultPlan()
	if err := yaml.UnmarshalStrict(data, &plan); err != nil {
		return Plan{}, fmt.Errorf("failed to parse plan file %s: %w", path, err)
	}

	if err := plan.Validate(false); err != nil {
		return Plan{}, fmt.Errorf("invalid plan file %s: %w", path, err)
	}
	return plan, nil
}

// WritePlan writes the plan to a YAML file, without passwords
func WritePlan(fs afero.Fs, path string, plan Plan) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0600); err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}
	return nil
}
