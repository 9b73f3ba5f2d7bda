package core

// Key code definitions. Values follow the GLFW numbering so the glfw
// backend can query them directly.
type KeyCode uint16

const (
	KEY_SPACE      KeyCode = 32
	KEY_APOSTROPHE KeyCode = 39
	KEY_COMMA      KeyCode = 44
	KEY_MINUS      KeyCode = 45
	KEY_PERIOD     KeyCode = 46
	KEY_SLASH      KeyCode = 47
	KEY_0          KeyCode = 48
	KEY_1          KeyCode = 49
	KEY_2          KeyCode = 50
	KEY_3          KeyCode = 51
	KEY_4          KeyCode = 52
	KEY_5          KeyCode = 53
	KEY_6          KeyCode = 54
	KEY_7          KeyCode = 55
	KEY_8          KeyCode = 56
	KEY_9          KeyCode = 57
	KEY_SEMICOLON  KeyCode = 59
	KEY_EQUAL      KeyCode = 61
	KEY_A          KeyCode = 65
	KEY_B          KeyCode = 66
	KEY_C          KeyCode = 67
	KEY_D          KeyCode = 68
	KEY_E          KeyCode = 69
	KEY_F          KeyCode = 70
	KEY_G          KeyCode = 71
	KEY_H          KeyCode = 72
	KEY_I          KeyCode = 73
	KEY_J          KeyCode = 74
	KEY_K          KeyCode = 75
	KEY_L          KeyCode = 76
	KEY_M          KeyCode = 77
	KEY_N          KeyCode = 78
	KEY_O          KeyCode = 79
	KEY_P          KeyCode = 80
	KEY_Q          KeyCode = 81
	KEY_R          KeyCode = 82
	KEY_S          KeyCode = 83
	KEY_T          KeyCode = 84
	KEY_U          KeyCode = 85
	KEY_V          KeyCode = 86
	KEY_W          KeyCode = 87
	KEY_X          KeyCode = 88
	KEY_Y          KeyCode = 89
	KEY_Z          KeyCode = 90
	KEY_GRAVE      KeyCode = 96
	KEY_ESCAPE     KeyCode = 256
	KEY_ENTER      KeyCode = 257
	KEY_TAB        KeyCode = 258
	KEY_BACKSPACE  KeyCode = 259
	KEY_INSERT     KeyCode = 260
	KEY_DELETE     KeyCode = 261
	KEY_RIGHT      KeyCode = 262
	KEY_LEFT       KeyCode = 263
	KEY_DOWN       KeyCode = 264
	KEY_UP         KeyCode = 265
	KEY_PAGE_UP    KeyCode = 266
	KEY_PAGE_DOWN  KeyCode = 267
	KEY_HOME       KeyCode = 268
	KEY_END        KeyCode = 269
	KEY_F1         KeyCode = 290
	KEY_F2         KeyCode = 291
	KEY_F3         KeyCode = 292
	KEY_F4         KeyCode = 293
	KEY_F5         KeyCode = 294
	KEY_F6         KeyCode = 295
	KEY_F7         KeyCode = 296
	KEY_F8         KeyCode = 297
	KEY_F9         KeyCode = 298
	KEY_F10        KeyCode = 299
	KEY_F11        KeyCode = 300
	KEY_F12        KeyCode = 301
	KEY_LSHIFT     KeyCode = 340
	KEY_LCONTROL   KeyCode = 341
	KEY_LALT       KeyCode = 342
	KEY_RSHIFT     KeyCode = 344
	KEY_RCONTROL   KeyCode = 345
	KEY_RALT       KeyCode = 346
	KEY_LAST       KeyCode = 348
	KEYS_MAX_KEYS  KeyCode = 512
)

// KeyState is the per-key tri-state recomputed once per frame.
type KeyState struct {
	// True only on the frame the key went down.
	Pressed bool
	// True for the whole time the key is down.
	Held bool
	// True only on the frame the key went up.
	Released bool
}

// InputState holds the keyboard table for one engine instance.
type InputState struct {
	keys [KEYS_MAX_KEYS]KeyState
}

func NewInputState() *InputState {
	return &InputState{}
}

// Update recomputes every key from the raw key-down query.
func (is *InputState) Update(isDown func(key KeyCode) bool) {
	for k := KeyCode(0); k < KEYS_MAX_KEYS; k++ {
		down := isDown(k)
		state := &is.keys[k]
		state.Pressed = false
		state.Released = false

		if down && !state.Held {
			state.Pressed = true
			state.Held = true
		} else if !down && state.Held {
			state.Released = true
			state.Held = false
		}
	}
}

// GetKey returns the state of key. Out of range codes report an idle key.
func (is *InputState) GetKey(key KeyCode) KeyState {
	if key >= KEYS_MAX_KEYS {
		return KeyState{}
	}
	return is.keys[key]
}

func (is *InputState) IsKeyDown(key KeyCode) bool {
	return is.GetKey(key).Held
}

// Reset releases every key without reporting edges.
func (is *InputState) Reset() {
	is.keys = [KEYS_MAX_KEYS]KeyState{}
}
