package validation

// Rule set names accepted by Validate.
const (
	Registration   = "registration"
	Login          = "login"
	ForgotPassword = "forgotPassword"
	ResetPassword  = "resetPassword"
	OtpVerify      = "otpVerify"
	AccountDetails = "accountDetails"
	Deal           = "deal"
)

const (
	msgRequired        = "This field is required*"
	msgPasswordPattern = "Provide a minimum of 8 characters with an uppercase, a lowercase, a number and a special character*"
)

// RegistrationRules covers the sign-up form.
var RegistrationRules = RuleSet{
	"firstName": {
		required("First name is required*"),
		minLen(2, "First name requires a minimum of 2 characters"),
	},
	"lastName": {
		required("Last name is required*"),
		minLen(2, "Last name requires a minimum of 2 characters"),
	},
	"username": {
		required("Username is required*"),
		minLen(4, "Username requires a minimum of 4 characters"),
	},
	"email": {
		required("Email is required*"),
		email("Provide a valid email address*"),
	},
	"address.country": {
		required("Country is required*"),
	},
	"phoneNumber": {
		required("Phone number is required*"),
		mobilePhone("Provide a valid phone number, exclude country code*"),
	},
	"password": {
		required("Password is required*"),
		password(msgPasswordPattern),
	},
}

// LoginRules covers the credential form.
var LoginRules = RuleSet{
	"email": {
		required("Email is required*"),
		email("Provide a valid email address*"),
	},
	"password": {
		required("Password is required*"),
	},
}

// ForgotPasswordRules covers the reset-request form.
var ForgotPasswordRules = RuleSet{
	"email": {
		required("Email is required*"),
		email("Provide a valid email address*"),
	},
}

// ResetPasswordRules covers the password-reset form.
var ResetPasswordRules = RuleSet{
	"password": {
		required("Password is required*"),
		password(msgPasswordPattern),
	},
	"confirmPassword": {
		required("Confirm your password*"),
		equalsField("password", "Passwords do not match!"),
	},
}

// OtpVerifyRules covers the one-time-code form.
var OtpVerifyRules = RuleSet{
	"code":  {required(msgRequired)},
	"pinId": {required(msgRequired)},
}

// AccountDetailsRules covers one leg of a deal. Note the asymmetry:
// swiftCode and routingNumber are acceptable when absent, accountNumber is
// not.
var AccountDetailsRules = RuleSet{
	"bank.name": {required(msgRequired)},
	"bank.code": {required(msgRequired)},
	"bank.swiftCode": {
		bic("Invalid Swift Code"),
	},
	"bank.routingNumber": {
		digits("Provide a valid routing number"),
	},
	"amount":      {requiredNumber(msgRequired)},
	"accountName": {required(msgRequired)},
	"accountNumber": {
		required(msgRequired),
		digitsRequired("Provide a valid account number"),
	},
}

// DealRules composes both account-details legs plus the deal economics.
var DealRules = merge(
	prefixed("debit", AccountDetailsRules),
	prefixed("credit", AccountDetailsRules),
	RuleSet{
		"type":           {required(msgRequired)},
		"rate":           {requiredNumber(msgRequired)},
		"transactionFee": {requiredNumber(msgRequired)},
		"settlementFee":  {requiredNumber(msgRequired)},
	},
)

var registry = map[string]RuleSet{
	Registration:   RegistrationRules,
	Login:          LoginRules,
	ForgotPassword: ForgotPasswordRules,
	ResetPassword:  ResetPasswordRules,
	OtpVerify:      OtpVerifyRules,
	AccountDetails: AccountDetailsRules,
	Deal:           DealRules,
}
