package recipes

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"recipebook/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrintRecipe renders a recipe as a printable PDF card with a QR code
// pointing at the shareable recipe page.
func (api *API) PrintRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe ID format")
		return
	}

	recipe, err := api.store.Get(ctx, id)
	if err == ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if err != nil {
		api.fail(w, http.StatusInternalServerError, "Failed to fetch recipe", err)
		return
	}

	shareURL := fmt.Sprintf("%s/recipes/%s", api.shareBaseURL, id.Hex())
	qrPNG, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
	if err != nil {
		api.fail(w, http.StatusInternalServerError, "Failed to generate QR code", err)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, recipe.Title)
	pdf.Ln(10)

	pdf.SetFont("Arial", "I", 11)
	pdf.Cell(0, 8, fmt.Sprintf("%s cuisine - by %s", recipe.Cuisine, recipe.UserName))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Preparation: %d min", recipe.PrepTime))
	pdf.Ln(6)
	if recipe.CookTime > 0 {
		pdf.Cell(0, 8, fmt.Sprintf("Cooking: %d min", recipe.CookTime))
		pdf.Ln(6)
	}
	if recipe.Servings > 0 {
		pdf.Cell(0, 8, fmt.Sprintf("Servings: %d", recipe.Servings))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, recipe.Description, "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Ingredients")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for _, ing := range recipe.Ingredients {
		pdf.MultiCell(0, 6, "- "+ing, "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Instructions")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for i, step := range recipe.Instructions {
		pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s", i+1, step), "", "L", false)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 10, 35, 35, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		api.fail(w, http.StatusInternalServerError, "Failed to generate PDF", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=recipe-"+id.Hex()+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
