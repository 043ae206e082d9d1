package model

type Weather struct {
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Humidity    int     `json:"humidity"`
	Condition   string  `json:"condition"`
	RainChance  int     `json:"rainChance"`
	WindSpeed   float64 `json:"windSpeed"`
	Pressure    int     `json:"pressure"`
	Mock        bool    `json:"mock,omitempty"`
}
