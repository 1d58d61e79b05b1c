package tenant

type renameInput struct {
	Tenant string `path:"tenant" example:"alice" doc:"Текущий идентификатор тенанта"`
	Body   struct {
		NewTenant string `json:"new_tenant" example:"alicia" minLength:"1" maxLength:"128"`
	}
}

type renameOutput struct {
	Body renameResponse
}

type renameResponse struct {
	Tenant string `json:"tenant" doc:"Идентификатор, под которым теперь лежат данные"`
	Status string `json:"status" example:"Ok"`
}
