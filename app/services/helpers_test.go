package services_test

import (
	"io"
	"strings"
)

// fixtureWithEventlessProduct is a minimal directory holding one product
// that has no recorded events at all.
func fixtureWithEventlessProduct() io.Reader {
	return strings.NewReader(`{
		"users": [
			{"id": "farmer-9", "name": "Test Farmer", "role": "farmer", "email": "farmer9@example.com"}
		],
		"products": [
			{
				"id": "prod-100",
				"name": "Heirloom Tomatoes",
				"type": "Vegetable",
				"farmerId": "farmer-9",
				"farmerName": "Test Farmer",
				"harvestDate": "2023-10-01",
				"origin": "Test Farm, Oregon",
				"quantity": 50,
				"unit": "kg",
				"organicCertified": false,
				"qrCode": "prod-100-qr",
				"currentStatus": "at-farm"
			}
		],
		"transitEvents": [],
		"storageEvents": [],
		"retailEvents": [],
		"feedback": []
	}`)
}
