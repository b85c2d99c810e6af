package speech

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// espeak-ng voices that carry a regional variant.
var regionalVoices = map[string]bool{
	"en-us":  true,
	"en-gb":  true,
	"pt-br":  true,
	"es-419": true,
}

// VoiceFor maps a BCP 47 tag to an espeak-ng voice name. An explicit override
// wins when it is non-empty.
func VoiceFor(tag, override string) (string, error) {
	if v := strings.TrimSpace(override); v != "" {
		return v, nil
	}
	t, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("parse language %q: %w", tag, err)
	}
	base, _ := t.Base()
	name := base.String()
	if region, conf := t.Region(); conf == language.Exact {
		withRegion := name + "-" + strings.ToLower(region.String())
		if regionalVoices[withRegion] {
			return withRegion, nil
		}
	}
	return name, nil
}
