package entities

// Иерархия: корпус -> этаж -> комната -> оборудование.

type Building struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type Floor struct {
	ID          uint64 `json:"id"`
	Number      int    `json:"number"`
	Description string `json:"description"`
	BuildingID  uint64 `json:"building_id"`
}

type Room struct {
	ID        uint64 `json:"id"`
	Number    string `json:"number"`
	Name      string `json:"name"`
	FloorID   uint64 `json:"floor_id"`
	IsSpecial bool   `json:"is_special"`
}
