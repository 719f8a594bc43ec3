package discovery

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SkillManifest is the name of the manifest file that marks a directory as
// a skill.
const SkillManifest = "SKILL.md"

// Metadata holds the recognized keys of a SKILL.md YAML front matter block.
// The body below the front matter is free-form documentation and is not
// parsed.
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ParseManifest extracts metadata from a SKILL.md file. Missing or
// unparsable front matter is not an error: the zero Metadata is returned so
// callers can fall back to the directory name.
func ParseManifest(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, &DiscoveryError{
			Type:    ErrorTypeFilesystem,
			Message: "failed to read skill manifest",
			Err:     err,
		}
	}
	return parseFrontMatter(string(data)), nil
}

// parseFrontMatter reads the text between the first and second "---"
// delimiters as YAML. Anything malformed yields the zero Metadata.
func parseFrontMatter(content string) Metadata {
	content = strings.TrimPrefix(content, "\uFEFF")

	parts := strings.SplitN(content, "---", 3)
	if len(parts) < 3 {
		return Metadata{}
	}

	var meta Metadata
	if err := yaml.Unmarshal([]byte(parts[1]), &meta); err != nil {
		return Metadata{}
	}
	return meta
}
