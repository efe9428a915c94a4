package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

const dreamLog = "outputs/img-samples/000001.1234.png: \"a cat on a mat\" -s 50 -W 512 -H 512 -S 42\r\n" +
	"outputs/img-samples/000002.5678.png: \"café au lait\" -S 99\r\n" +
	"not a record\r\n"

// setupDreamProject writes a dream log and one progress image into a fresh
// project directory.
func setupDreamProject(ctx *harness.Context) error {
	projectDir := ctx.NewDir("project")
	samplesDir := filepath.Join(projectDir, "outputs", "img-samples")
	if err := fs.CreateDir(filepath.Join(samplesDir, "intermediates")); err != nil {
		return err
	}
	if err := fs.WriteString(filepath.Join(samplesDir, "dream_log.txt"), dreamLog); err != nil {
		return fmt.Errorf("failed to write dream log: %w", err)
	}
	if err := fs.WriteString(filepath.Join(samplesDir, "intermediates", "000001.0.png"), ""); err != nil {
		return err
	}
	ctx.Set("project_dir", projectDir)
	return nil
}

// cliResult is what a scenario step inspects after running the binary.
type cliResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func runDreamsearch(ctx *harness.Context, args ...string) (cliResult, error) {
	binary, err := FindProjectBinary()
	if err != nil {
		return cliResult{}, err
	}
	cmd := ctx.Command(binary, args...).Dir(ctx.GetString("project_dir"))
	result := cmd.Run()
	ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
	return cliResult{Stdout: result.Stdout, Stderr: result.Stderr, ExitCode: result.ExitCode}, nil
}

// SearchTextScenario checks that matching lines are echoed and malformed
// lines are reported on stderr.
func SearchTextScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "dreamsearch-text",
		Description: "Echoes matching dream log lines with LF endings.",
		Tags:        []string{"search"},
		Steps: []harness.Step{
			harness.NewStep("Setup dream project", setupDreamProject),
			harness.NewStep("Run 'dreamsearch cat'", func(ctx *harness.Context) error {
				result, err := runDreamsearch(ctx, "cat")
				if err != nil {
					return err
				}
				if result.ExitCode != 0 {
					return fmt.Errorf("dreamsearch cat failed: %s", result.Stderr)
				}
				want := "outputs/img-samples/000001.1234.png: \"a cat on a mat\" -s 50 -W 512 -H 512 -S 42\n"
				if err := assert.Equal(want, result.Stdout, "Should echo the matching line"); err != nil {
					return err
				}
				return assert.Contains(result.Stderr, "Skipping malformed log line", "Should warn about the malformed line")
			}),
		},
	}
}

// SearchJSONScenario checks the JSON records, including progress images.
func SearchJSONScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "dreamsearch-json",
		Description: "Prints matching records as an ASCII JSON array.",
		Tags:        []string{"search", "json"},
		Steps: []harness.Step{
			harness.NewStep("Setup dream project", setupDreamProject),
			harness.NewStep("Run 'dreamsearch --json --progress-images'", func(ctx *harness.Context) error {
				result, err := runDreamsearch(ctx, "--json", "--progress-images", "cat")
				if err != nil {
					return err
				}
				if result.ExitCode != 0 {
					return fmt.Errorf("dreamsearch --json failed: %s", result.Stderr)
				}

				var records []map[string]any
				if err := json.Unmarshal([]byte(result.Stdout), &records); err != nil {
					return fmt.Errorf("failed to parse JSON output: %w", err)
				}
				if err := assert.Equal(1, len(records), "Should match one record"); err != nil {
					return err
				}
				if err := assert.Equal("512", records[0]["height"], "CRLF must not leak into the last flag"); err != nil {
					return err
				}
				images, _ := records[0]["progress_images"].([]any)
				return assert.Equal(1, len(images), "Should list the intermediate image")
			}),
			harness.NewStep("Run 'dreamsearch --json caf'", func(ctx *harness.Context) error {
				result, err := runDreamsearch(ctx, "--json", "caf")
				if err != nil {
					return err
				}
				if result.ExitCode != 0 {
					return fmt.Errorf("dreamsearch --json caf failed: %s", result.Stderr)
				}
				return assert.Contains(result.Stdout, `"prompt": "caf\u00e9 au lait"`, "Should escape non-ASCII text")
			}),
		},
	}
}

// SearchUsageErrorScenario checks that flag conflicts exit with status 2
// before the log is read.
func SearchUsageErrorScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "dreamsearch-usage-error",
		Description: "Rejects --progress-images without --json.",
		Tags:        []string{"search", "errors"},
		Steps: []harness.Step{
			harness.NewStep("Setup dream project", setupDreamProject),
			harness.NewStep("Run 'dreamsearch --progress-images'", func(ctx *harness.Context) error {
				result, err := runDreamsearch(ctx, "--progress-images", "cat")
				if err != nil {
					return err
				}
				if err := assert.Equal(2, result.ExitCode, "Should exit with the usage status"); err != nil {
					return err
				}
				if err := assert.Equal("", result.Stdout, "Should print nothing on stdout"); err != nil {
					return err
				}
				return assert.Contains(result.Stderr, "requires --json", "Should explain the conflict")
			}),
		},
	}
}
