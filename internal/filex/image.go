// Package filex implements local pre-flight checks for files submitted
// to the analysis backend. Rejections here never reach the network.
package filex

import (
	"fmt"
	"net/http"

	"github.com/pixvera/imageproof/internal/common"
)

// allowedImageTypes is the MIME allow-list for analysis uploads.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
}

// ValidateImage checks that content looks like an allowed image and fits
// the size ceiling. The type is sniffed from the leading bytes, not taken
// from the file name. Returned errors wrap common.ErrImageTooLarge or
// common.ErrUnsupportedImageType and carry a user-facing message.
func ValidateImage(name string, content []byte) error {
	if len(content) > common.MaxImageBytes {
		return fmt.Errorf("%w: %s exceeds the 10 MiB limit", common.ErrImageTooLarge, name)
	}

	contentType := http.DetectContentType(content)
	if _, ok := allowedImageTypes[contentType]; !ok {
		return fmt.Errorf("%w: %s detected as %s, only JPEG and PNG are accepted",
			common.ErrUnsupportedImageType, name, contentType)
	}

	return nil
}
