package cart

// DefaultLines is the baseline cart seeded at startup.
func DefaultLines() []CartLine {
	return []CartLine{
		{ID: "1", ProductID: "e43638ce-6aa0-4b85-b27f-e1d07eb678c6", Quantity: 2, DeliveryOptionID: "1"},
		{ID: "2", ProductID: "15b6fc6f-327a-4ec4-896f-486349e85a3d", Quantity: 1, DeliveryOptionID: "2"},
	}
}
