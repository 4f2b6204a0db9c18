package property

// Enumerations referenced by shipped property blocks. Member order is the
// discriminant order.
func init() {
	RegisterEnum("gEAIMode", "gEAIMode_None", "gEAIMode_Sender", "gEAIMode_Routine", "gEAIMode_Sleep", "gEAIMode_Observe", "gEAIMode_Talk", "gEAIMode_GotoBed", "gEAIMode_Sneak", "gEAIMode_Flee", "gEAIMode_Combat", "gEAIMode_Dead", "gEAIMode_Down")
	RegisterEnum("gEAttitude", "gEAttitude_None", "gEAttitude_Friendly", "gEAttitude_Neutral", "gEAttitude_Angry", "gEAttitude_Hostile", "gEAttitude_Panic")
	RegisterEnum("gEGuild", "gEGuild_None", "gEGuild_Don", "gEGuild_Dig", "gEGuild_Grd", "gEGuild_Inq", "gEGuild_Pir", "gEGuild_Mag", "gEGuild_Sla", "gEGuild_Civ")
	RegisterEnum("gESpecies", "gESpecies_None", "gESpecies_Human", "gESpecies_Boar", "gESpecies_Wolf", "gESpecies_Rat", "gESpecies_Ghoul", "gESpecies_Gnome", "gESpecies_Golem", "gESpecies_Lizard", "gESpecies_Ogre", "gESpecies_Skeleton", "gESpecies_Stingrat", "gESpecies_Titan", "gESpecies_Vulture", "gESpecies_Wasp")
	RegisterEnum("gEGender", "gEGender_Male", "gEGender_Female")
	RegisterEnum("gEDirection", "gEDirection_None", "gEDirection_Forward", "gEDirection_Back", "gEDirection_Left", "gEDirection_Right", "gEDirection_Up", "gEDirection_Down")
	RegisterEnum("gEItemCategory", "gEItemCategory_None", "gEItemCategory_Weapon", "gEItemCategory_Armor", "gEItemCategory_Artefact", "gEItemCategory_Potion", "gEItemCategory_Food", "gEItemCategory_Document", "gEItemCategory_Spell", "gEItemCategory_Misc", "gEItemCategory_Gold")
	RegisterEnum("gEItemUseType", "gEItemUseType_None", "gEItemUseType_1H", "gEItemUseType_2H", "gEItemUseType_Axe", "gEItemUseType_Staff", "gEItemUseType_Bow", "gEItemUseType_CrossBow", "gEItemUseType_Shield", "gEItemUseType_Torch", "gEItemUseType_Cast", "gEItemUseType_Arrow", "gEItemUseType_Bolt", "gEItemUseType_Pickaxe", "gEItemUseType_Rod")
	RegisterEnum("gEEquipSlot", "gEEquipSlot_None", "gEEquipSlot_MeleeWeapon", "gEEquipSlot_MeleeShield", "gEEquipSlot_RangedWeapon", "gEEquipSlot_RangedAmmo", "gEEquipSlot_Amulet", "gEEquipSlot_Ring1", "gEEquipSlot_Ring2", "gEEquipSlot_Armor", "gEEquipSlot_Helmet")
	RegisterEnum("gEInventorySlot", "gEInventorySlot_None", "gEInventorySlot_LeftHand", "gEInventorySlot_RightHand", "gEInventorySlot_Body", "gEInventorySlot_Head", "gEInventorySlot_Back", "gEInventorySlot_BeltL", "gEInventorySlot_BeltR")
	RegisterEnum("gEItemHoldType", "gEItemHoldType_None", "gEItemHoldType_1H", "gEItemHoldType_2H", "gEItemHoldType_Bow", "gEItemHoldType_CrossBow", "gEItemHoldType_Torch", "gEItemHoldType_Apple", "gEItemHoldType_Fist")
	RegisterEnum("gEQuality", "gEQuality_None", "gEQuality_Sharp", "gEQuality_Burning", "gEQuality_Frozen", "gEQuality_Poisoned", "gEQuality_Blessed", "gEQuality_Forged", "gEQuality_Worn")
	RegisterEnum("gEDamageType", "gEDamageType_None", "gEDamageType_Edge", "gEDamageType_Blunt", "gEDamageType_Point", "gEDamageType_Fire", "gEDamageType_Ice", "gEDamageType_Magic", "gEDamageType_Physics")
	RegisterEnum("gEWeatherType", "gEWeatherType_Sunny", "gEWeatherType_Cloudy", "gEWeatherType_Rainy", "gEWeatherType_Stormy", "gEWeatherType_Foggy")
	RegisterEnum("gESkill", "gESkill_None", "gESkill_Atrib_HP", "gESkill_Atrib_MP", "gESkill_Stat_LV", "gESkill_Stat_XP", "gESkill_Stat_LP", "gESkill_Stat_STR", "gESkill_Stat_DEX", "gESkill_Stat_INT", "gESkill_Prot_Edge", "gESkill_Prot_Blunt", "gESkill_Prot_Point", "gESkill_Prot_Fire", "gESkill_Prot_Ice", "gESkill_Prot_Magic", "gESkill_Combat_Sword", "gESkill_Combat_Axe", "gESkill_Combat_Staff", "gESkill_Combat_Bow", "gESkill_Combat_CrossBow", "gESkill_Magic_Circle", "gESkill_Misc_Smith", "gESkill_Misc_Alchemy", "gESkill_Misc_Mining", "gESkill_Misc_Sneak", "gESkill_Misc_Picklock", "gESkill_Misc_Pickpocket")
	RegisterEnum("gEQuestStatus", "gEQuestStatus_Open", "gEQuestStatus_Running", "gEQuestStatus_Success", "gEQuestStatus_Failed", "gEQuestStatus_Obsolete", "gEQuestStatus_Cancelled", "gEQuestStatus_Lost", "gEQuestStatus_Won")
	RegisterEnum("gEQuestType", "gEQuestType_HasItems", "gEQuestType_Report", "gEQuestType_Kill", "gEQuestType_Defeat", "gEQuestType_DriveAway", "gEQuestType_Arena", "gEQuestType_BringNpc", "gEQuestType_FollowNpc", "gEQuestType_EnterArea", "gEQuestType_Reputation", "gEQuestType_Steal", "gEQuestType_Plunder", "gEQuestType_Free")
	RegisterEnum("gEQuestActor", "gEQuestActor_Client", "gEQuestActor_Target")
	RegisterEnum("gEInfoType", "gEInfoType_Comment", "gEInfoType_Refuse", "gEInfoType_Important", "gEInfoType_News", "gEInfoType_Info", "gEInfoType_Parent", "gEInfoType_Trade", "gEInfoType_Teach")
	RegisterEnum("gEInfoCondType", "gEInfoCondType_Crime", "gEInfoCondType_Duel", "gEInfoCondType_Hello", "gEInfoCondType_General", "gEInfoCondType_Overtime", "gEInfoCondType_Running", "gEInfoCondType_Activator", "gEInfoCondType_Ready", "gEInfoCondType_Success", "gEInfoCondType_Failed", "gEInfoCondType_Open", "gEInfoCondType_Delivery", "gEInfoCondType_PartDelivery", "gEInfoCondType_Finished")
	RegisterEnum("gEInfoCommand", "gEInfoCommand_Say", "gEInfoCommand_Give", "gEInfoCommand_Take", "gEInfoCommand_Attack", "gEInfoCommand_Trade", "gEInfoCommand_Teach", "gEInfoCommand_Join", "gEInfoCommand_Dismiss", "gEInfoCommand_Run", "gEInfoCommand_End")
	RegisterEnum("gEInfoGesture", "gEInfoGesture_Me", "gEInfoGesture_You", "gEInfoGesture_Yes", "gEInfoGesture_No", "gEInfoGesture_Threaten", "gEInfoGesture_Shrug")
	RegisterEnum("gELockStatus", "gELockStatus_Unlocked", "gELockStatus_Locked", "gELockStatus_Broken")
	RegisterEnum("gEInteractionType", "gEInteractionType_None", "gEInteractionType_Sit", "gEInteractionType_Sleep", "gEInteractionType_Cook", "gEInteractionType_Smith", "gEInteractionType_Pray", "gEInteractionType_Read", "gEInteractionType_Dig", "gEInteractionType_Fish")
	RegisterEnum("gEAmbientAction", "gEAmbientAction_Ambient", "gEAmbientAction_Listen", "gEAmbientAction_Dance", "gEAmbientAction_Cheer", "gEAmbientAction_Pee", "gEAmbientAction_Smoke", "gEAmbientAction_Stand")
	RegisterEnum("gEBraveryOverride", "gEBraveryOverride_None", "gEBraveryOverride_Brave", "gEBraveryOverride_Coward")
	RegisterEnum("gEPoliticalAlignment", "gEPoliticalAlignment_None", "gEPoliticalAlignment_Don", "gEPoliticalAlignment_Otc", "gEPoliticalAlignment_Vol")
	RegisterEnum("gEDoorStatus", "gEDoorStatus_Open", "gEDoorStatus_Closed")
	RegisterEnum("gETouchType", "gETouchType_None", "gETouchType_Mouse", "gETouchType_Player")
	RegisterEnum("gEArenaStatus", "gEArenaStatus_None", "gEArenaStatus_Running", "gEArenaStatus_PlayerWon", "gEArenaStatus_PlayerLost")
	RegisterEnum("gECrime", "gECrime_None", "gECrime_MurderLivestock", "gECrime_Theft", "gECrime_Murder", "gECrime_Attack", "gECrime_Kidnapping")
	RegisterEnum("gEFocusSource", "gEFocusSource_Camera", "gEFocusSource_Player", "gEFocusSource_Auto")
	RegisterEnum("eEPhysicRangeType", "eEPhysicRangeType_ProcessingRange", "eEPhysicRangeType_VisibilityRange")
	RegisterEnum("eECollisionShapeType", "eECollisionShapeType_None", "eECollisionShapeType_TriMesh", "eECollisionShapeType_Plane", "eECollisionShapeType_Box", "eECollisionShapeType_Capsule", "eECollisionShapeType_Sphere", "eECollisionShapeType_Point", "eECollisionShapeType_ConvexHull")
	RegisterEnum("eEShapeGroup", "eEShapeGroup_Static", "eEShapeGroup_Dynamic", "eEShapeGroup_Shield", "eEShapeGroup_MeleeWeapon", "eEShapeGroup_Projectile", "eEShapeGroup_Movement", "eEShapeGroup_WeaponTrigger", "eEShapeGroup_ParticleTrigger", "eEShapeGroup_Camera", "eEShapeGroup_Tree_Trunk", "eEShapeGroup_Tree_Branches", "eEShapeGroup_Cloth", "eEShapeGroup_PhysicalBodyPart", "eEShapeGroup_HeightRepulsor", "eEShapeGroup_Ragdoll", "eEShapeGroup_Bone")
	RegisterEnum("eEShapeMaterial", "eEShapeMaterial_None", "eEShapeMaterial_Wood", "eEShapeMaterial_Metal", "eEShapeMaterial_Water", "eEShapeMaterial_Stone", "eEShapeMaterial_Earth", "eEShapeMaterial_Ice", "eEShapeMaterial_Leather", "eEShapeMaterial_Clay", "eEShapeMaterial_Glass", "eEShapeMaterial_Flesh", "eEShapeMaterial_Snow", "eEShapeMaterial_Debris", "eEShapeMaterial_Foliage", "eEShapeMaterial_Magic", "eEShapeMaterial_Grass")
	RegisterEnum("eEShaderMaterialBlendMode", "eEShaderMaterialBlendMode_Normal", "eEShaderMaterialBlendMode_Masked", "eEShaderMaterialBlendMode_AlphaBlend", "eEShaderMaterialBlendMode_Modulate", "eEShaderMaterialBlendMode_AlphaModulate", "eEShaderMaterialBlendMode_Translucent", "eEShaderMaterialBlendMode_DarkMask", "eEShaderMaterialBlendMode_BrightMask")
	RegisterEnum("eEColorSrcCombinerType", "eEColorSrcCombinerType_Add", "eEColorSrcCombinerType_Subtract", "eEColorSrcCombinerType_Multiply", "eEColorSrcCombinerType_Max", "eEColorSrcCombinerType_Min")
	RegisterEnum("eEFacingDirection", "eEFacingDirection_FacingAway", "eEFacingDirection_FacingToward", "eEFacingDirection_FacingSide")
	RegisterEnum("eELightingStyle", "eELightingStyle_Disabled", "eELightingStyle_Simple", "eELightingStyle_Complex")
	RegisterEnum("eEStaticLighingType", "eEStaticLighingType_Lightmap", "eEStaticLighingType_Vertex", "eEStaticLighingType_Instance", "eEStaticLighingType_No")
	RegisterEnum("eEAnimationMode", "eEAnimationMode_Static", "eEAnimationMode_Loop", "eEAnimationMode_PingPong", "eEAnimationMode_Once")
	RegisterEnum("eEBoolOverwrite", "eEBoolOverwrite_None", "eEBoolOverwrite_False", "eEBoolOverwrite_True")
	RegisterEnum("eEDynamicLightEffect", "eEDynamicLightEffect_Steady", "eEDynamicLightEffect_Pulse", "eEDynamicLightEffect_Flicker", "eEDynamicLightEffect_Strobe")
	RegisterEnum("eEMoverPlayBackMode", "eEMoverPlayBackMode_Single", "eEMoverPlayBackMode_Repeat", "eEMoverPlayBackMode_PingPong", "eEMoverPlayBackMode_PingPongOnce")
	RegisterEnum("eERigidbody_Flag", "eERigidbody_Flag_NONE", "eERigidbody_Flag_FROZEN", "eERigidbody_Flag_DISABLE_COLLISION", "eERigidbody_Flag_DISABLE_RESPONSE", "eERigidbody_Flag_KINEMATIC")
	RegisterEnum("eEAudioChannelGroup", "eEAudioChannelGroup_Master", "eEAudioChannelGroup_Voice", "eEAudioChannelGroup_Music", "eEAudioChannelGroup_FX", "eEAudioChannelGroup_Ambient", "eEAudioChannelGroup_Menu")
	RegisterEnum("eEAudioEmitterShape", "eEAudioEmitterShape_Point", "eEAudioEmitterShape_Box", "eEAudioEmitterShape_Sphere")
	RegisterEnum("eEAudioEmitterMode", "eEAudioEmitterMode_Once", "eEAudioEmitterMode_Loop", "eEAudioEmitterMode_Repeat")
	RegisterEnum("eEFogMode", "eEFogMode_Linear", "eEFogMode_Exp", "eEFogMode_Exp2")
	RegisterEnum("eEPropertySetType", "eEPropertySetType_Unknown", "eEPropertySetType_Mesh", "eEPropertySetType_Collision", "eEPropertySetType_Animation", "eEPropertySetType_Light", "eEPropertySetType_Particle", "eEPropertySetType_Audio", "eEPropertySetType_Navigation", "eEPropertySetType_Inventory", "eEPropertySetType_Interaction", "eEPropertySetType_Party", "eEPropertySetType_Item")
	RegisterEnumValues("eETextureAddressMode", map[string]uint32{
		"eETextureAddressMode_Wrap":   1,
		"eETextureAddressMode_Mirror": 2,
		"eETextureAddressMode_Clamp":  3,
		"eETextureAddressMode_Border": 4,
	})
	RegisterEnumValues("eEShaderMaterialVersion", map[string]uint32{
		"eEShaderMaterialVersion_Gothic3":  1,
		"eEShaderMaterialVersion_Risen":    2,
		"eEShaderMaterialVersion_Risen2":   3,
		"eEShaderMaterialVersion_Elex":     5,
		"eEShaderMaterialVersion_Unknown6": 0x10,
	})
}
