package entity

// All lists the ledger models in migration order.
func All() []interface{} {
	return []interface{}{
		&Transaction{},
		&Position{},
		&RealizedPnL{},
		&PriceCacheEntry{},
		&PriceAlert{},
	}
}
