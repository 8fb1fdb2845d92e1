package gemini

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/bnema/smart-image-cli/internal/domain"
)

const (
	// ImageURLPrefix marks generated image downloads in the response tree.
	ImageURLPrefix = "https://lh3.googleusercontent.com/gg-dl/"

	fallbackImageLimit = 4
	defaultImageTitle  = "Generated image"
)

var imagePlaceholderPattern = regexp.MustCompile(`http://googleusercontent\.com/image_generation_content/\d+`)

// EncodeRequest builds the form body for one prompt: f.req is [null, "<json of [[prompt],null,null]>"].
func EncodeRequest(prompt, accessToken string) (url.Values, error) {
	inner, err := marshalCompact([]any{[]any{prompt}, nil, nil})
	if err != nil {
		return nil, fmt.Errorf("encode prompt: %w", err)
	}

	outer, err := marshalCompact([]any{nil, inner})
	if err != nil {
		return nil, fmt.Errorf("encode request envelope: %w", err)
	}

	return url.Values{
		"at":    {accessToken},
		"f.req": {outer},
	}, nil
}

func marshalCompact(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Decode extracts the answer text and any generated images from a raw
// StreamGenerate body. The body is line framed; only the last line that parses
// as JSON is used.
func Decode(body []byte) (domain.GenerationResult, error) {
	return DecodeWithPrefix(body, ImageURLPrefix)
}

// DecodeWithPrefix is Decode with image URLs recognised by imagePrefix instead
// of the image CDN prefix.
func DecodeWithPrefix(body []byte, imagePrefix string) (domain.GenerationResult, error) {
	if imagePrefix == "" {
		imagePrefix = ImageURLPrefix
	}
	isImageURL := func(s string) bool { return strings.HasPrefix(s, imagePrefix) }

	envelope, err := lastJSONLine(body)
	if err != nil {
		return domain.GenerationResult{}, err
	}

	parts, ok := envelope.([]any)
	if !ok {
		return domain.GenerationResult{}, fmt.Errorf("%w: response envelope is not an array", domain.ErrParse)
	}

	bodyIndex, payload, ok := findAnswerPart(parts)
	if !ok {
		return domain.GenerationResult{}, fmt.Errorf("%w: no answer part in response", domain.ErrParse)
	}

	candidates, _ := nestedArray(payload, 4)
	if len(candidates) == 0 {
		return domain.GenerationResult{}, fmt.Errorf("%w: response has no candidates", domain.ErrNoContent)
	}

	candidate, ok := candidates[0].([]any)
	if !ok {
		return domain.GenerationResult{}, fmt.Errorf("%w: first candidate is not an array", domain.ErrParse)
	}

	text, _ := nestedString(candidate, 1, 0)
	result := domain.GenerationResult{Text: text}

	if !hasImageContent(candidate, text) {
		return result, nil
	}

	imageCandidate, ok := findImagePart(parts, bodyIndex, isImageURL)
	if !ok {
		return domain.GenerationResult{}, fmt.Errorf("%w: image content indicated but no image part found", domain.ErrNoContent)
	}

	if finished, ok := nestedString(imageCandidate, 1, 0); ok && finished != "" {
		result.Text = cleanText(finished)
	}

	result.Images = indexedImages(imageCandidate)
	if len(result.Images) == 0 {
		result.Images = scannedImages(imageCandidate, isImageURL)
	}
	if len(result.Images) == 0 {
		return domain.GenerationResult{}, fmt.Errorf("%w: no image URL found", domain.ErrNoContent)
	}

	return result, nil
}

func lastJSONLine(body []byte) (any, error) {
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), len(body)+1)

	var (
		last  any
		found bool
	)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var v any
		if err := json.Unmarshal(line, &v); err != nil {
			continue
		}
		last, found = v, true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan response: %v", domain.ErrParse, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: no JSON line in response", domain.ErrParse)
	}

	return last, nil
}

// decodePart parses the JSON string embedded at index 2 of an envelope part.
func decodePart(part any) ([]any, bool) {
	raw, ok := nestedString(part, 2)
	if !ok || raw == "" {
		return nil, false
	}

	var payload []any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, false
	}

	return payload, true
}

// findAnswerPart skips framing and heartbeat parts: the answer carries candidates at index 4.
func findAnswerPart(parts []any) (int, []any, bool) {
	for i, part := range parts {
		payload, ok := decodePart(part)
		if !ok {
			continue
		}
		if _, ok := nestedValue(payload, 4); ok {
			return i, payload, true
		}
	}

	return 0, nil, false
}

func hasImageContent(candidate []any, text string) bool {
	if _, ok := nestedValue(candidate, 12, 7, 0); ok {
		return true
	}

	return imagePlaceholderPattern.MatchString(text)
}

// findImagePart looks from the answer part onwards, since images may arrive in a later frame.
func findImagePart(parts []any, from int, isImageURL func(string) bool) ([]any, bool) {
	for i := from; i < len(parts); i++ {
		payload, ok := decodePart(parts[i])
		if !ok {
			continue
		}

		candidate, ok := nestedValue(payload, 4, 0)
		if !ok {
			continue
		}
		if len(collectStrings(candidate, isImageURL, 1)) == 0 {
			continue
		}

		arr, _ := candidate.([]any)
		return arr, true
	}

	return nil, false
}

func indexedImages(candidate []any) []domain.ImageCandidate {
	generated, _ := nestedArray(candidate, 12, 7, 0)

	images := make([]domain.ImageCandidate, 0, len(generated))
	for idx, node := range generated {
		imageURL, ok := nestedString(node, 0, 3, 3)
		if !ok || imageURL == "" {
			continue
		}

		images = append(images, domain.ImageCandidate{
			URL:   imageURL,
			Title: imageTitle(node),
			Alt:   imageAlt(node, idx),
		})
	}

	return images
}

// scannedImages is the best-effort path when the indexed layout yields nothing.
func scannedImages(candidate []any, isImageURL func(string) bool) []domain.ImageCandidate {
	urls := collectStrings(candidate, isImageURL, fallbackImageLimit)

	images := make([]domain.ImageCandidate, 0, len(urls))
	for _, imageURL := range urls {
		images = append(images, domain.ImageCandidate{URL: imageURL, Title: defaultImageTitle})
	}

	return images
}

func imageTitle(node any) string {
	num, ok := nestedNumber(node, 3, 6)
	if !ok || num == 0 || math.IsNaN(num) {
		return defaultImageTitle
	}

	return defaultImageTitle + " " + strconv.FormatFloat(num, 'f', -1, 64)
}

func imageAlt(node any, idx int) string {
	captions, _ := nestedArray(node, 3, 5)
	if idx < len(captions) {
		if alt, ok := captions[idx].(string); ok {
			return alt
		}
	}
	if len(captions) > 0 {
		if alt, ok := captions[0].(string); ok {
			return alt
		}
	}

	return ""
}

func cleanText(text string) string {
	return strings.TrimRightFunc(imagePlaceholderPattern.ReplaceAllString(text, ""), unicode.IsSpace)
}

