package sanity

import (
	"fmt"
	"strings"
)

// ImageURL строит CDN-адрес по строковому идентификатору ассета вида
// "image-<hash>-<width>x<height>-<format>". Ядро хранит только
// идентификатор; производный URL нигде не сохраняется.
func ImageURL(projectID, dataset, ref string) (string, error) {
	parts := strings.Split(ref, "-")
	if len(parts) != 4 || parts[0] != "image" {
		return "", fmt.Errorf("bad image ref %q", ref)
	}
	return fmt.Sprintf("https://cdn.sanity.io/images/%s/%s/%s-%s.%s",
		projectID, dataset, parts[1], parts[2], parts[3]), nil
}
