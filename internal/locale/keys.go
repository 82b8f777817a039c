package locale

// Key is a dotted path into a translation tree. Every string the site renders
// is addressed through one of the constants below, so a typo becomes a
// compile error and a missing translation is caught by Tree.Missing.
type Key string

const (
	KeyHeaderProjects       Key = "header.projects"
	KeyHeaderSkills         Key = "header.skills"
	KeyHeaderContact        Key = "header.contact"
	KeyHeaderAdmin          Key = "header.admin"
	KeyHeaderToggleLanguage Key = "header.toggleLanguage"
	KeyHeaderOtherLanguage  Key = "header.otherLanguage"

	KeyHeroHeading    Key = "hero.heading"
	KeyHeroSubheading Key = "hero.subheading"
	KeyHeroButton     Key = "hero.button"

	KeyHomeMetaTitle       Key = "home.meta.title"
	KeyHomeMetaDescription Key = "home.meta.description"
	KeyHomeIntroGreeting   Key = "home.intro.greeting"
	KeyHomeIntroPhrase     Key = "home.intro.phrase"
	KeyHomeHelpText        Key = "home.helpText"

	KeyProjectsHeading              Key = "projects.heading"
	KeyProjectsSubheading           Key = "projects.subheading"
	KeyProjectsFrontend             Key = "projects.frontend"
	KeyProjectsBackend              Key = "projects.backend"
	KeyProjectsVisit                Key = "projects.visit"
	KeyProjectsWiibecDescription    Key = "projects.wiibecDescription"
	KeyProjectsMindovestDescription Key = "projects.mindovestDescription"

	KeySkillsHeading    Key = "skills.heading"
	KeySkillsSubheading Key = "skills.subheading"
	KeySkillsFrontend   Key = "skills.categories.frontend"
	KeySkillsBackend    Key = "skills.categories.backend"
	KeySkillsTools      Key = "skills.categories.tools"

	KeyCTAHeading Key = "cta.heading"
	KeyCTAButton  Key = "cta.button"

	KeyContactMetaTitle             Key = "contact.meta.title"
	KeyContactMetaDescription       Key = "contact.meta.description"
	KeyContactSubtitle              Key = "contact.subtitle"
	KeyContactFormTitle             Key = "contact.form.title"
	KeyContactFormName              Key = "contact.form.name"
	KeyContactFormNamePlaceholder   Key = "contact.form.namePlaceholder"
	KeyContactFormEmail             Key = "contact.form.email"
	KeyContactFormEmailPlaceholder  Key = "contact.form.emailPlaceholder"
	KeyContactFormSubject           Key = "contact.form.subject"
	KeyContactFormSubjectPlacehold  Key = "contact.form.subjectPlaceholder"
	KeyContactFormMessage           Key = "contact.form.message"
	KeyContactFormMessagePlacehold  Key = "contact.form.messagePlaceholder"
	KeyContactFormReasonLabel       Key = "contact.form.reason.label"
	KeyContactFormReasonPlaceholder Key = "contact.form.reason.placeholder"
	KeyContactFormReasonProject     Key = "contact.form.reason.project"
	KeyContactFormReasonBug         Key = "contact.form.reason.bug"
	KeyContactFormReasonCollab      Key = "contact.form.reason.collaboration"
	KeyContactFormReasonGeneral     Key = "contact.form.reason.general"
	KeyContactFormSubmit            Key = "contact.form.submit"
	KeyContactFormSending           Key = "contact.form.sending"
	KeyContactFormRequired          Key = "contact.form.required"
	KeyContactOptionsTitle          Key = "contact.options.title"
	KeyContactOptionsEmail          Key = "contact.options.email"
	KeyContactToastSuccessTitle     Key = "contact.toast.success.title"
	KeyContactToastSuccessDesc      Key = "contact.toast.success.description"
	KeyContactToastErrorTitle       Key = "contact.toast.error.title"
	KeyContactToastErrorDesc        Key = "contact.toast.error.description"

	KeyAdminMetaTitle           Key = "admin.meta.title"
	KeyAdminMetaDescription     Key = "admin.meta.description"
	KeyAdminLoginTitle          Key = "admin.login.title"
	KeyAdminLoginSubtitle       Key = "admin.login.subtitle"
	KeyAdminLoginPassword       Key = "admin.login.password"
	KeyAdminLoginPlaceholder    Key = "admin.login.passwordPlaceholder"
	KeyAdminLoginSubmit         Key = "admin.login.submit"
	KeyAdminLoginVerifying      Key = "admin.login.verifying"
	KeyAdminLoginErrorTitle     Key = "admin.login.errorTitle"
	KeyAdminLoginError          Key = "admin.login.error"
	KeyAdminDashboardTitle      Key = "admin.dashboard.title"
	KeyAdminDashboardSubtitle   Key = "admin.dashboard.subtitle"
	KeyAdminDashboardLogout     Key = "admin.dashboard.logout"
	KeyAdminDashboardName       Key = "admin.dashboard.name"
	KeyAdminDashboardEmail      Key = "admin.dashboard.email"
	KeyAdminDashboardReason     Key = "admin.dashboard.reason"
	KeyAdminDashboardSubject    Key = "admin.dashboard.subject"
	KeyAdminDashboardMessage    Key = "admin.dashboard.message"
	KeyAdminDashboardDate       Key = "admin.dashboard.date"
	KeyAdminDashboardNoMessages Key = "admin.dashboard.noMessages"
	KeyAdminDashboardRefresh    Key = "admin.dashboard.refresh"
	KeyAdminDashboardLoading    Key = "admin.dashboard.loading"
	KeyAdminFetchError          Key = "admin.dashboard.fetchError"

	KeyFooterCraftedWith Key = "footer.crafted_with"
	KeyFooterRights      Key = "footer.rights"
)

// AllKeys enumerates every key the site renders. Both bundled trees must
// resolve each of them.
var AllKeys = []Key{
	KeyHeaderProjects, KeyHeaderSkills, KeyHeaderContact, KeyHeaderAdmin,
	KeyHeaderToggleLanguage, KeyHeaderOtherLanguage,
	KeyHeroHeading, KeyHeroSubheading, KeyHeroButton,
	KeyHomeMetaTitle, KeyHomeMetaDescription, KeyHomeIntroGreeting, KeyHomeIntroPhrase, KeyHomeHelpText,
	KeyProjectsHeading, KeyProjectsSubheading, KeyProjectsFrontend, KeyProjectsBackend, KeyProjectsVisit,
	KeyProjectsWiibecDescription, KeyProjectsMindovestDescription,
	KeySkillsHeading, KeySkillsSubheading, KeySkillsFrontend, KeySkillsBackend, KeySkillsTools,
	KeyCTAHeading, KeyCTAButton,
	KeyContactMetaTitle, KeyContactMetaDescription, KeyContactSubtitle, KeyContactFormTitle,
	KeyContactFormName, KeyContactFormNamePlaceholder, KeyContactFormEmail, KeyContactFormEmailPlaceholder,
	KeyContactFormSubject, KeyContactFormSubjectPlacehold, KeyContactFormMessage, KeyContactFormMessagePlacehold,
	KeyContactFormReasonLabel, KeyContactFormReasonPlaceholder, KeyContactFormReasonProject,
	KeyContactFormReasonBug, KeyContactFormReasonCollab, KeyContactFormReasonGeneral,
	KeyContactFormSubmit, KeyContactFormSending, KeyContactFormRequired,
	KeyContactOptionsTitle, KeyContactOptionsEmail,
	KeyContactToastSuccessTitle, KeyContactToastSuccessDesc, KeyContactToastErrorTitle, KeyContactToastErrorDesc,
	KeyAdminMetaTitle, KeyAdminMetaDescription, KeyAdminLoginTitle, KeyAdminLoginSubtitle,
	KeyAdminLoginPassword, KeyAdminLoginPlaceholder, KeyAdminLoginSubmit, KeyAdminLoginVerifying,
	KeyAdminLoginErrorTitle, KeyAdminLoginError,
	KeyAdminDashboardTitle, KeyAdminDashboardSubtitle, KeyAdminDashboardLogout, KeyAdminDashboardName,
	KeyAdminDashboardEmail, KeyAdminDashboardReason, KeyAdminDashboardSubject, KeyAdminDashboardMessage,
	KeyAdminDashboardDate, KeyAdminDashboardNoMessages, KeyAdminDashboardRefresh, KeyAdminDashboardLoading,
	KeyAdminFetchError,
	KeyFooterCraftedWith, KeyFooterRights,
}
