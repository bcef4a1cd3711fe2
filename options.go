package label

import "github.com/gogpu/label/config"

// ComposerOption configures a Composer during creation.
//
// Example:
//
//	// Default 440x320 profile
//	c, err := label.NewComposer(font)
//
//	// Profile loaded from YAML, printed sideways
//	c, err := label.NewComposer(font,
//	    label.WithProfile(p),
//	    label.WithConfig(config.WithOrientation(config.Landscape)),
//	)
type ComposerOption func(*composerOptions)

type composerOptions struct {
	profile config.Profile
	tweaks  []config.Option
}

func defaultOptions() composerOptions {
	return composerOptions{profile: config.Default()}
}

// WithProfile replaces the default profile.
func WithProfile(p config.Profile) ComposerOption {
	return func(o *composerOptions) {
		o.profile = p
	}
}

// WithConfig applies profile options after WithProfile, in order.
func WithConfig(opts ...config.Option) ComposerOption {
	return func(o *composerOptions) {
		o.tweaks = append(o.tweaks, opts...)
	}
}

func (o composerOptions) resolve() config.Profile {
	return o.profile.With(o.tweaks...)
}
