package health

type Input struct{}

type Output struct {
	Body Response
}

type Response struct {
	Status string `json:"status" example:"OK" doc:"Health status of the service"`
	Mode   string `json:"mode" enum:"local,mirrored" doc:"local - only embedded stores, mirrored - changes are confirmed by the remote mirror"`
}
