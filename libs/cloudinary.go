package libs

import (
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
)

const productImageTransformation = "c_fill,w_400,h_400,q_auto,f_auto"

// ImageCDN serves remote product images through Cloudinary's fetch delivery,
// resized for product cards.
type ImageCDN struct {
	cld *cloudinary.Cloudinary
}

func NewImageCDN(cloudinaryURL string) (*ImageCDN, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary environment variables not set")
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init from URL fail: %v", err)
	}
	return &ImageCDN{cld: cld}, nil
}

// ImageURL returns the delivery URL for source. Sources that are not absolute
// http(s) URLs, or that fail to build, are returned unchanged.
func (c *ImageCDN) ImageURL(source string) string {
	if c == nil || !(strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")) {
		return source
	}

	img, err := c.cld.Image(source)
	if err != nil {
		return source
	}
	img.DeliveryType = "fetch"
	img.Transformation = productImageTransformation

	url, err := img.String()
	if err != nil || url == "" {
		return source
	}
	return url
}
