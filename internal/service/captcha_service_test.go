package service

import (
	"errors"
	"testing"

	"github.com/bangmod-market/internal/config"
)

func TestCaptchaServiceDisabledSceneSkipsVerify(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Enabled: true, Scenes: config.CaptchaSceneConfig{Login: true}})
	if err := svc.Verify(CaptchaSceneRegister, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("register scene is disabled, got %v", err)
	}
	if err := svc.Verify(CaptchaSceneLogin, CaptchaVerifyPayload{}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("expected captcha required, got %v", err)
	}
}

func TestCaptchaServiceVerifyUsesStoredAnswer(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Enabled: true, Scenes: config.CaptchaSceneConfig{Login: true}})
	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate challenge failed: %v", err)
	}
	answer := svc.imageStore().Get(challenge.CaptchaID, false)
	if answer == "" {
		t.Fatalf("expected stored answer")
	}
	if err := svc.Verify(CaptchaSceneLogin, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: "wrong-code"}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("expected invalid captcha, got %v", err)
	}
}
