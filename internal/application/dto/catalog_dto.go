package dto

// BrandResponse marca para autocompletado y filtros.
type BrandResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductResponse modelo de una marca para autocompletado.
type ProductResponse struct {
	ID       string `json:"id"`
	BrandID  string `json:"brand_id"`
	Model    string `json:"model"`
	Category string `json:"category"`
}
