package entity

// Facing — какая физическая камера используется.
type Facing string

const (
	FacingUser        Facing = "user"        // фронтальная
	FacingEnvironment Facing = "environment" // тыловая
)

// Opposite возвращает противоположное направление.
func (f Facing) Opposite() Facing {
	if f == FacingUser {
		return FacingEnvironment
	}
	return FacingUser
}

// ParseFacing разбирает направление камеры, пустая строка — тыловая.
func ParseFacing(s string) (Facing, bool) {
	switch Facing(s) {
	case FacingUser:
		return FacingUser, true
	case FacingEnvironment, "":
		return FacingEnvironment, true
	}
	return "", false
}

// CameraState — состояние контроллера камеры.
type CameraState string

const (
	CameraClosed  CameraState = "closed"
	CameraOpening CameraState = "opening"
	CameraOpen    CameraState = "open"
)
