package owners

// Owner es el dueño registrado de una o más mascotas. No se borra por
// ninguna operación expuesta: los huérfanos se acumulan y se limpian por
// mantenimiento fuera de la app.
type Owner struct {
	ID         string
	BarangayID string

	FullName      string
	ContactNumber string
	Address       string // Purok/Sitio, texto libre
	Email         string
}
