package announcements

import "time"

type Category string

const (
	CategoryEvent    Category = "Event"
	CategoryNews     Category = "News"
	CategoryAdvisory Category = "Advisory"
	CategoryHealth   Category = "Health"
)

func ValidCategory(c Category) bool {
	switch c {
	case CategoryEvent, CategoryNews, CategoryAdvisory, CategoryHealth:
		return true
	default:
		return false
	}
}

// LinkPreview es la tarjeta resuelta en el servidor al crear el
// anuncio. Se persiste con el anuncio: nunca se re-resuelve.
type LinkPreview struct {
	URL         string
	Title       string
	Description string
	ImageURL    string
	Domain      string
}

// Announcement es una publicación del tablón del barangay. El nombre y
// rol del autor se resuelven al listar desde la tabla de usuarios; si
// la cuenta ya no existe se muestra "Unknown"/"Staff".
type Announcement struct {
	ID         string
	BarangayID string

	AuthorID   string
	AuthorName string
	AuthorRole string

	Title    string
	Content  string
	Category Category

	PhotoURL    string
	LinkPreview *LinkPreview

	DatePosted time.Time
	Likes      int
}
