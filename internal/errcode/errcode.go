// Package errcode mantiene la tabla estable de códigos de error de la API.
package errcode

// Códigos expuestos en el campo "code" de las respuestas de error.
const (
	Internal               = "0000"
	ValueNotValid          = "0100"
	Deserialization        = "0101"
	InvalidCredentials     = "4001"
	SigningKeyMissing      = "4002"
	EmailAlreadyRegistered = "5001"
	UserNotFound           = "5002"
	DeactivateUser         = "5003"
	CpfAlreadyRegistered   = "5004"
	CpfCannotBeChanged     = "5005"
)

var messages = map[string]string{
	Internal:               "Erro Interno!",
	Deserialization:        "Erro de Deserializacao",
	InvalidCredentials:     "Credenciais inválidas",
	SigningKeyMissing:      "A chave JWT é inválida ou está ausente",
	EmailAlreadyRegistered: "E-mail já cadastrado no sistema",
	UserNotFound:           "Usuário não encontrado",
	DeactivateUser:         "Erro ao inativar Usuario do Sistema",
	CpfAlreadyRegistered:   "CPF já cadastrado no sistema",
	CpfCannotBeChanged:     "CPF não pode ser alterado.",
}

// Message devuelve el mensaje asociado al código; códigos desconocidos
// caen en un mensaje genérico.
func Message(code string) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return "Erro desconhecido"
}

// Response es el cuerpo estándar de error {code, message}.
type Response struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewResponse arma la respuesta a partir de la tabla de códigos.
func NewResponse(code string) Response {
	return Response{Code: code, Message: Message(code)}
}

// NewFieldResponse arma una respuesta de validación con mensaje propio.
func NewFieldResponse(message string) Response {
	return Response{Code: ValueNotValid, Message: message}
}
