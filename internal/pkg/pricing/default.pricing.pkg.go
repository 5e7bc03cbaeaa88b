package pricing

import "github.com/Baru2006/EasyRecharge-MM/internal/common/enum"

// DefaultEntries is the built-in price list, used when no PRICE_TABLE_PATH
// is configured.
func DefaultEntries() []PriceEntry {
	return []PriceEntry{
		{Category: enum.SIM, Group: "MPT", Key: "1GB", Label: "1GB", Customer: 1300},
		{Category: enum.SIM, Group: "MPT", Key: "2GB", Label: "2GB", Customer: 2400},
		{Category: enum.SIM, Group: "MPT", Key: "6GB", Label: "6GB", Customer: 6900},
		{Category: enum.SIM, Group: "MPT", Key: "10GB", Label: "10GB", Customer: 10000},
		{Category: enum.SIM, Group: "Ooredoo", Key: "1GB", Label: "1GB", Customer: 1000},
		{Category: enum.SIM, Group: "Ooredoo", Key: "5GB", Label: "5GB", Customer: 4500},
		{Category: enum.SIM, Group: "Ooredoo", Key: "15GB", Label: "15GB", Customer: 12000},
		{Category: enum.SIM, Group: "ATOM", Key: "1.5GB", Label: "1.5GB", Customer: 1500},
		{Category: enum.SIM, Group: "ATOM", Key: "7GB", Label: "7GB", Customer: 7000},
		{Category: enum.SIM, Group: "Mytel", Key: "2GB", Label: "2GB", Customer: 1800},
		{Category: enum.SIM, Group: "Mytel", Key: "8GB", Label: "8GB", Customer: 8000},

		{Category: enum.GAME, Group: "Free Fire", Key: "freefire-100", Label: "Free Fire 100 Diamonds", Customer: 3000, Reseller: 2800},
		{Category: enum.GAME, Group: "PUBG Mobile", Key: "pubg-60", Label: "PUBG Mobile 60 UC", Customer: 2000, Reseller: 1800},
		{Category: enum.GAME, Group: "Mobile Legends", Key: "mlbb-86", Label: "Mobile Legends 86 Diamonds", Customer: 2500, Reseller: 2300},

		{Category: enum.SMM, Key: "Facebook-Likes", Label: "Facebook Page Likes", Customer: 15, PerUnit: true},
		{Category: enum.SMM, Key: "IG-Followers", Label: "Instagram Followers", Customer: 20, PerUnit: true},
		{Category: enum.SMM, Key: "TikTok-Views", Label: "TikTok Views", Customer: 1, PerUnit: true},
	}
}

func DefaultTable() *Table {
	return NewTable(DefaultEntries()...)
}
