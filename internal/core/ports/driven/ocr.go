package driven

import "context"

// TextRecognizer extracts text from an image.
type TextRecognizer interface {
	// Recognize returns the text found in the image at imagePath.
	// An empty string means no text was found and is not an error.
	Recognize(ctx context.Context, imagePath string) (string, error)

	// Languages returns the recognition locales in use.
	Languages() []string
}
