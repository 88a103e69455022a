package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"net/http"
	"strconv"

	"backend/models"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
	"gorm.io/gorm"
)

// addLabel adds text to an image at the specified position
func addLabel(img *image.RGBA, x, y int, label string) {
	col := color.RGBA{0, 0, 0, 255}
	face := inconsolata.Regular8x16

	point := fixed.Point26_6{
		X: fixed.Int26_6(x * 64),
		Y: fixed.Int26_6(y * 64),
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  point,
	}
	d.DrawString(label)
}

// addLabelBold adds bold text for field labels
func addLabelBold(img *image.RGBA, x, y int, label string) {
	col := color.RGBA{30, 30, 30, 255}
	face := inconsolata.Bold8x16

	point := fixed.Point26_6{
		X: fixed.Int26_6(x * 64),
		Y: fixed.Int26_6(y * 64),
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  point,
	}
	d.DrawString(label)
}

func truncateLabel(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

// GenerateEquipmentQR godoc
// @Summary      Generate equipment QR label as JPEG
// @Description  QR code encoding the equipment identity plus a printed label block with code, name, type, location and status. Scanned during PPM inspections to pull up the equipment record.
// @Tags         firefighting
// @Param        id   path      int  true  "Equipment ID"
// @Success      200  {file}    file  "JPEG image"
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/firefighting/equipment/{id}/qr [get]
func GenerateEquipmentQR(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid equipment ID"})
			return
		}

		var equipment models.Equipment
		err = db.Preload("EquipmentType").Preload("Location").First(&equipment, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Equipment not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		qrData := struct {
			ID            uint   `json:"id"`
			EquipmentCode string `json:"equipment_code"`
			Status        string `json:"status"`
		}{
			ID:            equipment.ID,
			EquipmentCode: equipment.EquipmentCode,
			Status:        equipment.Status,
		}

		jsonData, err := json.Marshal(qrData)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to marshal equipment data"})
			return
		}

		qr, err := qrcode.New(string(jsonData), qrcode.Medium)
		if err != nil {
			c.String(http.StatusInternalServerError, "QR code generation failed")
			return
		}

		qrImg := qr.Image(512)

		qrSize := qrImg.Bounds().Dy()
		padding := 30
		lineHeight := 28
		textAreaHeight := 5*lineHeight + padding
		totalHeight := qrSize + padding + textAreaHeight

		combinedImg := image.NewRGBA(image.Rect(0, 0, qrSize, totalHeight))
		draw.Draw(combinedImg, combinedImg.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

		qrRect := image.Rect(0, 0, qrSize, qrSize)
		draw.Draw(combinedImg, qrRect, qrImg, image.Point{}, draw.Src)

		separatorY := qrSize + padding/2
		for x := 0; x < qrSize; x++ {
			combinedImg.Set(x, separatorY, color.RGBA{200, 200, 200, 255})
		}

		startY := qrSize + padding + lineHeight
		xPos := 20

		typeName := "N/A"
		if equipment.EquipmentType != nil {
			typeName = equipment.EquipmentType.TypeName
		}
		locationName := "N/A"
		if equipment.Location != nil {
			locationName = equipment.Location.LocationName
		}
		installed := "N/A"
		if equipment.InstallationDate != nil {
			installed = equipment.InstallationDate.Format("2006-01-02")
		}

		addLabelBold(combinedImg, xPos, startY, "Code:")
		addLabel(combinedImg, xPos+120, startY, equipment.EquipmentCode)

		addLabelBold(combinedImg, xPos, startY+lineHeight, "Name:")
		addLabel(combinedImg, xPos+120, startY+lineHeight, truncateLabel(equipment.EquipmentName, 30))

		addLabelBold(combinedImg, xPos, startY+2*lineHeight, "Type:")
		addLabel(combinedImg, xPos+120, startY+2*lineHeight, truncateLabel(typeName, 28))

		addLabelBold(combinedImg, xPos, startY+3*lineHeight, "Location:")
		addLabel(combinedImg, xPos+120, startY+3*lineHeight, truncateLabel(locationName, 28))

		addLabelBold(combinedImg, xPos, startY+4*lineHeight, "Installed:")
		addLabel(combinedImg, xPos+120, startY+4*lineHeight, installed)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, combinedImg, nil); err != nil {
			c.String(http.StatusInternalServerError, "JPEG encoding failed")
			return
		}

		c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
	}
}
