package catalog

// ThemeEntry holds the display metadata that replaces a raw record's own.
type ThemeEntry struct {
	Title string
	Image string
}

// LookupTable is the fixed themed product set, assigned cyclically by index.
var LookupTable = [FetchLimit]ThemeEntry{
	{Title: "Mate Geométrico Low Poly", Image: "img/mate.webp"},
	{Title: "Maceta Groot / Robert Plant", Image: "img/maceta.webp"},
	{Title: "Soporte Auriculares Gamer", Image: "img/soporte auricular.webp"},
	{Title: "Dragón Articulado Flexible", Image: "img/dragon articulado.webp"},
	{Title: "Lámpara Luna Litofanía", Image: "img/lampara luna.webp"},
	{Title: "Soporte Celular Escritorio", Image: "img/soporte celular.webp"},
	{Title: "Figura Baby Yoda (Grogu)", Image: "img/figura baby yoda.webp"},
	{Title: "Llavero Personalizado", Image: "img/llavero personalizado.webp"},
	{Title: "Organizador de Cables", Image: "img/organizador de cables.webp"},
}

// ThemeFor returns the lookup entry for the record at index. Negative
// indexes wrap the same way positive ones do.
func ThemeFor(index int) ThemeEntry {
	slot := index % len(LookupTable)
	if slot < 0 {
		slot += len(LookupTable)
	}
	return LookupTable[slot]
}
