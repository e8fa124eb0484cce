package args

type SigningFlags struct {
	Keystore    ExistingFileType `group:"signing" help:"Keystore containing the signing key. The key alias must match the app name." exts:"jks,keystore"`
	StorePass   string           `group:"signing" help:"Password of the keystore. Prompted for when missing and running in a terminal."`
	KeyPass     string           `group:"signing" help:"Password of the signing key. Prompted for when missing and running in a terminal."`
	UnsignedApk ExistingFileType `group:"signing" help:"The APK to sign. Defaults to the android release build output." exts:"apk"`
}
