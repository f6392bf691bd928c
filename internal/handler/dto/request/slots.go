package request

type ListDatesQuery struct {
	LocationID string `form:"location_id" binding:"required,uuid"`
	PersonID   string `form:"person_id" binding:"omitempty,uuid"`
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	Days       int    `form:"days" binding:"omitempty,min=1,max=90"`
}

type ListSlotsQuery struct {
	LocationID string `form:"location_id" binding:"required,uuid"`
	PersonID   string `form:"person_id" binding:"omitempty,uuid"`
	Date       string `form:"date" binding:"required,datetime=2006-01-02"`
}
