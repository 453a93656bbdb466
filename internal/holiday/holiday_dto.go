package holiday

type CreateHolidayRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}
