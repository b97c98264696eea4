package validate

// ValidateText runs the full pipeline on document text: the completeness
// probe and the schema check first (either short-circuits), then the
// accumulating domain pass. The result is plain report text; callers that
// need structured issues use the stage functions directly.
func ValidateText(text string) string {
	return DefaultPolicy().ValidateText(text)
}

// ValidateText runs the full pipeline with this policy's thresholds.
func (p Policy) ValidateText(text string) string {
	if c := CheckComplete(text); !c.Complete() {
		return c.Render()
	}
	if err := ValidateSchema(text); err != nil {
		return err.Error()
	}
	return p.ValidateDomain(text).Render()
}
