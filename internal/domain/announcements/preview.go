package announcements

import (
	"net/url"
	"regexp"
	"strings"
)

// Imágenes de relleno para dominios que no permiten scraping desde el
// servicio. Mismos assets que usaba el tablón original.
const (
	fallbackSocialImage  = "https://images.unsplash.com/photo-1611162616475-46b635cb6868?auto=format&fit=crop&w=800&q=80"
	fallbackTwitterImage = "https://images.unsplash.com/photo-1611605698383-3b8cf24c4ece?auto=format&fit=crop&w=800&q=80"
	fallbackHealthImage  = "https://images.unsplash.com/photo-1576091160399-112ba8d25d1d?auto=format&fit=crop&w=800&q=80"
	fallbackGenericImage = "https://images.unsplash.com/photo-1432888498266-38ffec3eaf0a?auto=format&fit=crop&w=800&q=80"
)

var directImageRe = regexp.MustCompile(`\.(jpeg|jpg|gif|png)$`)

// ResolvePreview arma la tarjeta de un enlace sin salir a la red:
// YouTube expone miniaturas por ID de video, los enlaces directos a
// imagen se usan tal cual y el resto cae a una tarjeta genérica por
// dominio. Devuelve nil si la URL no parsea.
func ResolvePreview(rawURL string) *LinkPreview {
	clean := strings.TrimSpace(rawURL)
	if clean == "" {
		return nil
	}

	u, err := url.Parse(clean)
	if err != nil || u.Hostname() == "" {
		return nil
	}
	domain := strings.TrimPrefix(u.Hostname(), "www.")

	if strings.Contains(domain, "youtube.com") || strings.Contains(domain, "youtu.be") {
		videoID := ""
		if strings.Contains(domain, "youtu.be") {
			videoID = strings.TrimPrefix(u.Path, "/")
		} else {
			videoID = u.Query().Get("v")
		}
		if videoID != "" {
			return &LinkPreview{
				URL:         clean,
				Title:       "YouTube Video",
				Description: "Watch this video on YouTube.",
				ImageURL:    "https://img.youtube.com/vi/" + videoID + "/hqdefault.jpg",
				Domain:      "youtube.com",
			}
		}
	}

	if directImageRe.MatchString(clean) {
		return &LinkPreview{
			URL:         clean,
			Title:       "Shared Image",
			Description: "Click to view full size image.",
			ImageURL:    clean,
			Domain:      domain,
		}
	}

	if strings.Contains(domain, "facebook.com") || strings.Contains(domain, "fb.watch") {
		return &LinkPreview{
			URL:         clean,
			Title:       "Facebook Post",
			Description: "View this post on Facebook.",
			ImageURL:    fallbackSocialImage,
			Domain:      "facebook.com",
		}
	}

	if strings.Contains(domain, "twitter.com") || strings.Contains(domain, "x.com") {
		return &LinkPreview{
			URL:         clean,
			Title:       "X (Twitter) Post",
			Description: "View this conversation on X.",
			ImageURL:    fallbackTwitterImage,
			Domain:      "x.com",
		}
	}

	if strings.Contains(clean, "doh.gov") {
		return &LinkPreview{
			URL:         clean,
			Title:       "Department of Health Advisory",
			Description: "Official public health guidelines and updates.",
			ImageURL:    fallbackHealthImage,
			Domain:      "doh.gov.ph",
		}
	}

	return &LinkPreview{
		URL:         clean,
		Title:       "Link: " + domain,
		Description: "Click to visit the external link.",
		ImageURL:    fallbackGenericImage,
		Domain:      domain,
	}
}
