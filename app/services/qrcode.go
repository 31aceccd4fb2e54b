package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/pkg/crypt"
	"github.com/tracechain/tracechain/pkg/queue"
	"github.com/tracechain/tracechain/pkg/storage"
)

// QRPayload is the machine-readable identity encoded for a product.
// Scanning it leads a consumer to the public journey view.
type QRPayload struct {
	ProductID   string           `json:"productId"`
	Name        string           `json:"name"`
	Origin      string           `json:"origin"`
	HarvestDate models.Timestamp `json:"harvestDate"`
	JourneyURL  string           `json:"journeyUrl"`
	// Token authenticates the payload so a scanned code can be told
	// apart from a hand-typed product id. Empty when no app key is set.
	Token string `json:"token,omitempty"`
}

// QRCodeService produces QR payloads and schedules image rendering.
// Rendering is deliberately asynchronous with a short artificial delay,
// mirroring the deferred image load the dashboards expect.
type QRCodeService struct {
	dir *repositories.Directory
}

func NewQRCodeService(dir *repositories.Directory) *QRCodeService {
	return &QRCodeService{dir: dir}
}

// PayloadFor returns the QR payload for a product and, when the rendered
// image is not yet on disk, queues a render job. imageURL is empty until
// the render completes.
func (s *QRCodeService) PayloadFor(productID string) (QRPayload, string, bool) {
	product, ok := s.dir.Product(productID)
	if !ok {
		return QRPayload{}, "", false
	}

	payload := QRPayload{
		ProductID:   product.ID,
		Name:        product.Name,
		Origin:      product.Origin,
		HarvestDate: product.HarvestDate,
		JourneyURL:  "/api/products/" + product.ID + "/journey",
	}
	if token, err := crypt.EncryptJSON(map[string]string{"productId": product.ID}); err == nil {
		payload.Token = token
	}

	path := qrImagePath(product.ID)
	if storage.Exists(path) {
		return payload, storage.URL(path), true
	}

	queue.Dispatch(QRRenderJob{ProductID: product.ID, Payload: payload}) //nolint:errcheck
	return payload, "", true
}

func qrImagePath(productID string) string {
	return "qrcodes/" + productID + ".svg"
}

// QRRenderJob renders a product's QR placeholder image to storage. The
// sleep simulates the render latency clients are built to tolerate.
type QRRenderJob struct {
	ProductID string    `json:"productId"`
	Payload   QRPayload `json:"payload"`
}

// Handle renders the image and writes it to the default storage disk.
func (j QRRenderJob) Handle() error {
	time.Sleep(300 * time.Millisecond)

	data, err := json.Marshal(j.Payload)
	if err != nil {
		return fmt.Errorf("qrcode: marshal payload: %w", err)
	}

	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 200">`+
			`<rect width="200" height="200" fill="#fff"/>`+
			`<rect x="10" y="10" width="180" height="180" fill="none" stroke="#000" stroke-width="4"/>`+
			`<text x="100" y="95" font-size="10" text-anchor="middle">%s</text>`+
			`<desc>%s</desc></svg>`,
		j.ProductID, data,
	)

	if err := storage.Put(qrImagePath(j.ProductID), []byte(svg)); err != nil {
		return fmt.Errorf("qrcode: store image: %w", err)
	}
	return nil
}
