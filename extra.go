package modals

import "github.com/goliatone/go-modals/internal/hydrate"

// DecodeExtra decodes the extension data of reg into T. Unknown keys are
// ignored; a registration without extension data decodes to T's zero value.
func DecodeExtra[T any](reg Registration) (T, error) {
	decoder := hydrate.NewDecoder[T]()
	return decoder.Decode(hydrate.Context{
		ModalID: reg.ID,
		Side:    string(reg.DeclaredSide()),
	}, reg.Extra)
}

// DecodeExtraStrict is DecodeExtra but rejects keys T does not declare.
func DecodeExtraStrict[T any](reg Registration) (T, error) {
	decoder := hydrate.NewDecoder(hydrate.WithDisallowUnknownFields[T]())
	return decoder.Decode(hydrate.Context{
		ModalID: reg.ID,
		Side:    string(reg.DeclaredSide()),
	}, reg.Extra)
}
